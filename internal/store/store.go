// Package store persists extraction results as timestamped JSON files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
)

// Store writes one JSON file per processed document into a flat directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the extracted document as <basename>_<timestamp>.json and
// returns the file path.
func (s *Store) Save(doc document.Extracted) (string, error) {
	base := strings.TrimSuffix(doc.Metadata.Filename, filepath.Ext(doc.Metadata.Filename))
	if base == "" {
		base = "document"
	}
	name := fmt.Sprintf("%s_%s.json", base, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal extraction result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write extraction result: %w", err)
	}
	return path, nil
}
