package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
)

// Chunk is the atomic retrieval unit: a slice of the fused corpus plus its
// embedding vector.
type Chunk struct {
	Text   string
	Vector []float32
}

// ScoredChunk is a retrieval hit with its similarity to the query.
type ScoredChunk struct {
	Chunk
	Score float64
}

// Index is an in-memory cosine similarity index over corpus chunks. It is
// built once per document and never mutated afterwards.
type Index struct {
	mu     sync.RWMutex
	chunks []Chunk
}

// Build embeds every chunk text and assembles the index. An embedding
// failure aborts the build: a partially embedded index would silently hide
// parts of the document from retrieval.
func Build(ctx context.Context, texts []string, embedder llm.Embedder) (*Index, error) {
	chunks := make([]Chunk, 0, len(texts))
	for i, text := range texts {
		vec, err := embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, Chunk{Text: text, Vector: vec})
	}
	return &Index{chunks: chunks}, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Search returns the k chunks most similar to the query vector, best first.
func (ix *Index) Search(query []float32, k int) []ScoredChunk {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if k <= 0 {
		return nil
	}

	scored := make([]ScoredChunk, 0, len(ix.chunks))
	for _, c := range ix.chunks {
		scored = append(scored, ScoredChunk{Chunk: c, Score: CosineSimilarity(query, c.Vector)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
