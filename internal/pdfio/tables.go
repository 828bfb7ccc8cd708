package pdfio

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// minCellGap is the horizontal whitespace, in points, that separates two
// word runs into distinct cells.
const minCellGap = 12.0

// RawTable is an unstructured cell grid as detected on a page.
type RawTable [][]string

// ExtractRawTables detects tabular regions on every page and returns their
// raw cell grids, outer slice indexed by page (0-based). Detection is
// geometric: a text row whose word runs split into two or more columns is a
// table row, and consecutive table rows form one table.
func ExtractRawTables(path string) ([][]RawTable, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([][]RawTable, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		pages[i-1] = tablesFromRows(rows)
	}
	return pages, nil
}

// tablesFromRows groups consecutive multi-cell rows into tables.
func tablesFromRows(rows pdflib.Rows) []RawTable {
	var tables []RawTable
	var current RawTable

	flush := func() {
		// A lone multi-cell row is more likely a heading with columns of
		// whitespace than a table.
		if len(current) >= 2 {
			tables = append(tables, padGrid(current))
		}
		current = nil
	}

	for _, row := range rows {
		cells := splitCells(row)
		if len(cells) >= 2 {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()
	return tables
}

// splitCells clusters a row's word fragments into cells on horizontal gaps.
func splitCells(row *pdflib.Row) []string {
	texts := make([]pdflib.Text, len(row.Content))
	copy(texts, row.Content)
	sort.Slice(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var cells []string
	var cell strings.Builder
	prevEnd := 0.0

	for i, t := range texts {
		if t.S == "" {
			continue
		}
		if i > 0 && t.X-prevEnd > minCellGap && cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(t.S)
		end := t.X + t.W
		if end > prevEnd {
			prevEnd = end
		}
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}

// padGrid right-pads every row with empty cells to the widest row, so the
// grid is rectangular.
func padGrid(grid RawTable) RawTable {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}
	return grid
}
