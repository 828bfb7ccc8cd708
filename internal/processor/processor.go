// Package processor orchestrates one document's journey: validation, the
// concurrent fan-out of the three structurers, corpus fusion, and index
// construction.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VyomThaker-2154/Documind-ai/internal/chat"
	"github.com/VyomThaker-2154/Documind-ai/internal/document"
	"github.com/VyomThaker-2154/Documind-ai/internal/index"
	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
	"github.com/VyomThaker-2154/Documind-ai/internal/pdfio"
	"github.com/VyomThaker-2154/Documind-ai/internal/session"
	"github.com/VyomThaker-2154/Documind-ai/internal/structure"
)

// ValidationError rejects an upload before any processing starts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Options bounds processing and retrieval behavior.
type Options struct {
	MaxFileBytes int64
	ChunkSize    int
	ChunkOverlap int
	RetrievalK   int
	MaxCtxTokens int
}

// PageSource bundles the raw PDF access capabilities so tests can swap in
// deterministic stubs.
type PageSource struct {
	ExtractPages  func(path string) ([]string, error)
	ExtractTables func(path string) ([][]pdfio.RawTable, error)
}

// DefaultPageSource reads from the PDF itself.
func DefaultPageSource() PageSource {
	return PageSource{
		ExtractPages:  pdfio.ExtractPages,
		ExtractTables: pdfio.ExtractRawTables,
	}
}

// Processor turns a PDF path into a ready-to-query session snapshot.
type Processor struct {
	source    PageSource
	tables    *structure.TableStructurer
	visual    *structure.VisualStructurer
	completer llm.Completer
	embedder  llm.Embedder
	opts      Options
	log       *slog.Logger
}

func New(source PageSource, tables *structure.TableStructurer, visual *structure.VisualStructurer,
	completer llm.Completer, embedder llm.Embedder, opts Options, log *slog.Logger) *Processor {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = 10 * 1024 * 1024
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1500
	}
	if opts.ChunkOverlap <= 0 {
		opts.ChunkOverlap = 200
	}
	return &Processor{
		source:    source,
		tables:    tables,
		visual:    visual,
		completer: completer,
		embedder:  embedder,
		opts:      opts,
		log:       log,
	}
}

// Validate rejects missing files, non-PDF extensions, and oversize files.
func (p *Processor) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("PDF file not found: %s", path)}
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &ValidationError{Reason: "file must be a PDF"}
	}
	if info.Size() > p.opts.MaxFileBytes {
		return &ValidationError{
			Reason: fmt.Sprintf("file size (%d bytes) exceeds maximum allowed size (%d bytes)",
				info.Size(), p.opts.MaxFileBytes),
		}
	}
	return nil
}

// Process runs the three structurers concurrently over the same file, fuses
// their outputs, and builds the similarity index. Table extraction failures
// degrade to an empty table list and visual failures to an error-marked
// empty result; a text extraction failure is fatal to the upload.
func (p *Processor) Process(ctx context.Context, path, originalName string) (*session.Snapshot, error) {
	if err := p.Validate(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	var (
		textResult   document.TextResult
		tableRecords []document.TableRecord
		visualResult document.VisualResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pages, err := p.source.ExtractPages(path)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		textResult = structure.StructureText(pages)
		return nil
	})
	g.Go(func() error {
		raw, err := p.source.ExtractTables(path)
		if err != nil {
			p.log.Warn("table extraction failed, continuing without tables", "error", err)
			tableRecords = make([]document.TableRecord, 0)
			return nil
		}
		tableRecords = p.tables.Structure(gctx, raw)
		return nil
	})
	g.Go(func() error {
		visualResult = p.visual.Structure(path)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error processing PDF: %w", err)
	}

	extracted := document.Extracted{
		Metadata: document.Metadata{
			Filename:    originalName,
			ProcessedAt: time.Now(),
			FileSize:    info.Size(),
			TotalPages:  textResult.TotalPages,
		},
		Text:           textResult,
		Tables:         tableRecords,
		VisualElements: visualResult,
	}

	corpus := index.BuildCorpus(extracted)
	chunks := index.SplitText(corpus, p.opts.ChunkSize, p.opts.ChunkOverlap)
	idx, err := index.Build(ctx, chunks, p.embedder)
	if err != nil {
		return nil, fmt.Errorf("error processing PDF: %w", err)
	}
	p.log.Info("document indexed",
		"filename", originalName,
		"pages", textResult.TotalPages,
		"tables", len(tableRecords),
		"graphs", len(visualResult.Graphs),
		"images", len(visualResult.Images),
		"chunks", idx.Len(),
	)

	engine := chat.NewEngine(idx, p.completer, p.embedder, p.opts.RetrievalK, p.opts.MaxCtxTokens)
	return &session.Snapshot{Document: extracted, Engine: engine}, nil
}
