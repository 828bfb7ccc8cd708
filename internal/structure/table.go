package structure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
	"github.com/VyomThaker-2154/Documind-ai/internal/llm"
	"github.com/VyomThaker-2154/Documind-ai/internal/pdfio"
)

const tablePromptFormat = `Please analyze this table data and convert it into a structured format.
Focus on identifying headers and organizing the data appropriately.

Table Data:
%s

Convert this into a structured format with clear headers and data rows.
Return only the JSON structure without any explanation.`

// TableStructurer recovers structured header+rows representations from raw
// cell grids via the language model, with a deterministic fallback when the
// model reply is not valid JSON.
type TableStructurer struct {
	llm llm.Completer
	log *slog.Logger
}

func NewTableStructurer(completer llm.Completer, log *slog.Logger) *TableStructurer {
	return &TableStructurer{llm: completer, log: log}
}

// Structure processes every detected table in page order, then detection
// order. Table numbers are 1-based and restart on every page. Entirely
// blank tables are skipped.
func (s *TableStructurer) Structure(ctx context.Context, pages [][]pdfio.RawTable) []document.TableRecord {
	tables := make([]document.TableRecord, 0)

	for pageIdx, pageTables := range pages {
		pageNum := pageIdx + 1
		for tableIdx, raw := range pageTables {
			tableText := FormatTableText(raw)
			if tableText == "" {
				continue
			}

			structured, err := s.structureOne(ctx, tableText)
			if err != nil {
				s.log.Warn("table structuring failed, dropping table",
					"page", pageNum, "table", tableIdx+1, "error", err)
				continue
			}

			columnCount := 0
			if len(raw) > 0 {
				columnCount = len(raw[0])
			}
			tables = append(tables, document.TableRecord{
				PageNumber:     pageNum,
				TableNumber:    tableIdx + 1,
				StructuredData: structured,
				Metadata: document.TableMetadata{
					RowCount:    len(raw),
					ColumnCount: columnCount,
				},
			})
		}
	}
	return tables
}

// structureOne asks the model for a header+rows JSON structure. An
// unparseable reply degrades to the raw-text fallback, never to an error.
func (s *TableStructurer) structureOne(ctx context.Context, tableText string) (any, error) {
	prompt := fmt.Sprintf(tablePromptFormat, tableText)

	var reply string
	var err error
	for attempt := 0; attempt < llm.MaxRetries; attempt++ {
		reply, err = s.llm.Complete(ctx, prompt)
		if err == nil || !llm.IsRetryable(err) {
			break
		}
		s.log.Warn("retryable table model error", "attempt", attempt, "error", err)
		select {
		case <-time.After(llm.Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	var structured any
	if jsonErr := json.Unmarshal([]byte(llm.StripCodeBlock(reply)), &structured); jsonErr != nil {
		return document.TableFallback{
			RawText: tableText,
			Rows:    strings.Split(tableText, "\n"),
		}, nil
	}
	return structured, nil
}

// FormatTableText normalizes a raw grid to delimited text: cells trimmed,
// joined with " | ", fully blank rows dropped. An entirely empty table
// formats to the empty string.
func FormatTableText(table pdfio.RawTable) string {
	var rows []string
	for _, row := range table {
		cleaned := make([]string, len(row))
		blank := true
		for i, cell := range row {
			cleaned[i] = strings.TrimSpace(cell)
			if cleaned[i] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, strings.Join(cleaned, " | "))
		}
	}
	return strings.Join(rows, "\n")
}
