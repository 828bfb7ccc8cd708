package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
)

func TestSave(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc := document.Extracted{
		Metadata: document.Metadata{
			Filename:    "report.pdf",
			ProcessedAt: time.Now(),
			FileSize:    1234,
			TotalPages:  3,
		},
	}
	path, err := st.Save(doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "report_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected file name %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	var loaded document.Extracted
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if loaded.Metadata.Filename != "report.pdf" || loaded.Metadata.TotalPages != 3 {
		t.Errorf("round-tripped metadata mismatch: %+v", loaded.Metadata)
	}
}

func TestSave_EmptyFilename(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := st.Save(document.Extracted{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "document_") {
		t.Errorf("unexpected fallback name %q", filepath.Base(path))
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "extracted")
	if _, err := New(dir); err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("storage directory was not created: %v", err)
	}
}
