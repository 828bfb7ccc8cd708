package index

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	if got := CosineSimilarity(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors = %f, want 1", got)
	}
	if got := CosineSimilarity(a, []float32{0, 1, 0}); got != 0 {
		t.Errorf("orthogonal vectors = %f, want 0", got)
	}
	if got := CosineSimilarity(a, []float32{1, 0}); got != 0 {
		t.Errorf("mismatched lengths = %f, want 0", got)
	}
	if got := CosineSimilarity(a, []float32{0, 0, 0}); got != 0 {
		t.Errorf("zero vector = %f, want 0", got)
	}
}

func TestBuildAndSearch(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
		"beta":  {0, 1},
		"mixed": {1, 1},
	}}

	ix, err := Build(context.Background(), []string{"alpha", "beta", "mixed"}, embedder)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ix.Len())
	}

	hits := ix.Search([]float32{1, 0}, 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Text != "alpha" {
		t.Errorf("best hit = %q, want alpha", hits[0].Text)
	}
	if hits[1].Text != "mixed" {
		t.Errorf("second hit = %q, want mixed", hits[1].Text)
	}
	if hits[0].Score < hits[1].Score {
		t.Error("hits are not ordered best first")
	}
}

func TestSearch_KBounds(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"only": {1}}}
	ix, err := Build(context.Background(), []string{"only"}, embedder)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if hits := ix.Search([]float32{1}, 0); hits != nil {
		t.Errorf("k=0 should return nil, got %v", hits)
	}
	if hits := ix.Search([]float32{1}, 10); len(hits) != 1 {
		t.Errorf("k over index size should return everything, got %d", len(hits))
	}
}

func TestBuild_EmbedFailureAborts(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("model offline")}
	if _, err := Build(context.Background(), []string{"a"}, embedder); err == nil {
		t.Fatal("expected Build to fail when embedding fails")
	}
}
