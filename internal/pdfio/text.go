// Package pdfio provides the low-level PDF access capabilities the
// structurers consume: per-page plain text, raw table cell grids, and page
// rasterization.
package pdfio

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// ExtractPages returns the plain text of every page, in page order. A page
// that yields no text is returned as an empty string so indices stay aligned
// with page numbers.
func ExtractPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal to the document.
			continue
		}
		pages[i-1] = text
	}
	return pages, nil
}
