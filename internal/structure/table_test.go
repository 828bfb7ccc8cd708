package structure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
	"github.com/VyomThaker-2154/Documind-ai/internal/pdfio"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFormatTableText(t *testing.T) {
	table := pdfio.RawTable{
		{"Name ", " Score"},
		{"", "  "},
		{"alice", "10"},
	}
	want := "Name | Score\nalice | 10"
	if got := FormatTableText(table); got != want {
		t.Errorf("FormatTableText = %q, want %q", got, want)
	}
}

func TestFormatTableText_AllBlank(t *testing.T) {
	table := pdfio.RawTable{{"", ""}, {" ", ""}}
	if got := FormatTableText(table); got != "" {
		t.Errorf("expected empty string for blank table, got %q", got)
	}
}

func TestTableStructurer_ValidJSONReply(t *testing.T) {
	completer := &stubCompleter{reply: `{"headers":["Name","Score"],"rows":[["alice","10"]]}`}
	structurer := NewTableStructurer(completer, discardLogger())

	pages := [][]pdfio.RawTable{{
		{{"Name", "Score"}, {"alice", "10"}},
	}}
	tables := structurer.Structure(context.Background(), pages)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rec := tables[0]
	if rec.PageNumber != 1 || rec.TableNumber != 1 {
		t.Errorf("unexpected numbering: page=%d table=%d", rec.PageNumber, rec.TableNumber)
	}
	data, ok := rec.StructuredData.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded JSON object, got %T", rec.StructuredData)
	}
	if _, ok := data["headers"]; !ok {
		t.Error("decoded structure is missing headers")
	}
	if rec.Metadata.RowCount != 2 || rec.Metadata.ColumnCount != 2 {
		t.Errorf("unexpected metadata: %+v", rec.Metadata)
	}
}

func TestTableStructurer_CodeFencedReply(t *testing.T) {
	completer := &stubCompleter{reply: "```json\n{\"headers\":[\"A\"]}\n```"}
	structurer := NewTableStructurer(completer, discardLogger())

	tables := structurer.Structure(context.Background(), [][]pdfio.RawTable{{
		{{"A"}, {"1"}},
	}})

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if _, ok := tables[0].StructuredData.(map[string]any); !ok {
		t.Errorf("code fence was not stripped before decode: %T", tables[0].StructuredData)
	}
}

func TestTableStructurer_InvalidJSONFallsBack(t *testing.T) {
	completer := &stubCompleter{reply: "I could not produce JSON for this one."}
	structurer := NewTableStructurer(completer, discardLogger())

	raw := pdfio.RawTable{{"x", "y"}, {"1", "2"}}
	tables := structurer.Structure(context.Background(), [][]pdfio.RawTable{{raw}})

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	fallback, ok := tables[0].StructuredData.(document.TableFallback)
	if !ok {
		t.Fatalf("expected TableFallback, got %T", tables[0].StructuredData)
	}
	wantText := FormatTableText(raw)
	if fallback.RawText != wantText {
		t.Errorf("fallback raw text = %q, want %q", fallback.RawText, wantText)
	}
	if len(fallback.Rows) != len(strings.Split(wantText, "\n")) {
		t.Errorf("fallback rows = %v", fallback.Rows)
	}
}

func TestTableStructurer_SkipsBlankTables(t *testing.T) {
	completer := &stubCompleter{reply: `{}`}
	structurer := NewTableStructurer(completer, discardLogger())

	pages := [][]pdfio.RawTable{{
		{{"", ""}, {"", ""}, {"", ""}},
	}}
	tables := structurer.Structure(context.Background(), pages)

	if len(tables) != 0 {
		t.Fatalf("expected 0 tables for blank grid, got %d", len(tables))
	}
	if completer.calls != 0 {
		t.Errorf("model should not be consulted for blank tables, got %d calls", completer.calls)
	}
}

func TestTableStructurer_NumberingRestartsPerPage(t *testing.T) {
	completer := &stubCompleter{reply: `{}`}
	structurer := NewTableStructurer(completer, discardLogger())

	pages := [][]pdfio.RawTable{
		{{{"a"}, {"1"}}},
		{{{"b"}, {"2"}}},
	}
	tables := structurer.Structure(context.Background(), pages)

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].PageNumber != 1 || tables[0].TableNumber != 1 {
		t.Errorf("first table numbering: %+v", tables[0])
	}
	if tables[1].PageNumber != 2 || tables[1].TableNumber != 1 {
		t.Errorf("second table numbering: %+v", tables[1])
	}
}

func TestTableStructurer_ModelErrorDropsTable(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model unavailable")}
	structurer := NewTableStructurer(completer, discardLogger())

	tables := structurer.Structure(context.Background(), [][]pdfio.RawTable{{
		{{"a"}, {"1"}},
	}})

	if len(tables) != 0 {
		t.Fatalf("expected failed table to be dropped, got %d", len(tables))
	}
	if completer.calls != 1 {
		t.Errorf("non-retryable error should not be retried, got %d calls", completer.calls)
	}
}
