// Package index fuses the structured extractions into a single annotated
// corpus, chunks it, and builds the similarity index used for retrieval.
package index

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
)

// BuildCorpus flattens the extracted document into bracket-prefixed lines:
// text blocks first, then tables, then graphs, then images. The prefix is
// what later ties a retrieved chunk back to its source family.
func BuildCorpus(doc document.Extracted) string {
	var lines []string

	for _, block := range doc.Text.Content {
		switch block.Type {
		case document.BlockHeading:
			lines = append(lines, "[Heading] "+block.Text)
		case document.BlockParagraph:
			lines = append(lines, "[Paragraph] "+block.Text)
		}
	}

	for _, table := range doc.Tables {
		if table.StructuredData == nil {
			continue
		}
		data, err := json.Marshal(table.StructuredData)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("[Table on page %d] %s", table.PageNumber, data))
	}

	for _, graph := range doc.VisualElements.Graphs {
		lines = append(lines, fmt.Sprintf("[Graph on page %d] Type: %s. Extracted text: %s",
			graph.PageNumber, graph.GraphType, graph.ExtractedText))
	}

	for _, img := range doc.VisualElements.Images {
		if strings.TrimSpace(img.ExtractedText) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[Image on page %d] %s", img.PageNumber, img.ExtractedText))
	}

	return strings.Join(lines, "\n\n")
}
