package document

import "time"

// Block types emitted by the text structurer.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
)

// Metadata identifies a processed document.
type Metadata struct {
	Filename    string    `json:"filename"`
	ProcessedAt time.Time `json:"processed_at"`
	FileSize    int64     `json:"file_size"`
	TotalPages  int       `json:"total_pages"`
}

// TextBlock is one typed element of the reconstructed text hierarchy.
// Level is only meaningful for headings (>= 1).
type TextBlock struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"`
}

// TextStats accumulates across the whole document. ListItems, Sections and
// HierarchyDepth are declared for schema compatibility but the heading
// heuristic does not compute them; they stay zero.
type TextStats struct {
	TotalWords      int `json:"total_words"`
	TotalParagraphs int `json:"total_paragraphs"`
	TotalHeadings   int `json:"total_headings"`
	TotalListItems  int `json:"total_list_items"`
	TotalSections   int `json:"total_sections"`
	HierarchyDepth  int `json:"hierarchy_depth"`
}

// TextResult is the text structurer output.
type TextResult struct {
	Content    []TextBlock `json:"content"`
	Statistics TextStats   `json:"statistics"`
	TotalPages int         `json:"total_pages"`
}

// TableRecord is one structured table. TableNumber is 1-based and restarts
// on every page.
type TableRecord struct {
	PageNumber     int           `json:"page_number"`
	TableNumber    int           `json:"table_number"`
	StructuredData any           `json:"structured_data"`
	Metadata       TableMetadata `json:"metadata"`
}

// TableMetadata carries the raw grid dimensions.
type TableMetadata struct {
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`
}

// TableFallback is the deterministic structured_data used when the model
// reply is not valid JSON.
type TableFallback struct {
	RawText string   `json:"raw_text"`
	Rows    []string `json:"rows"`
}

// ImageElement is a page recorded as a plain image with OCR text.
type ImageElement struct {
	PageNumber    int    `json:"page_number"`
	ExtractedText string `json:"extracted_text"`
	WordCount     int    `json:"word_count"`
	Type          string `json:"type"`
}

// Axes counts the classified line segments backing a graph detection.
type Axes struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// GraphElement is a page classified as a chart-like visual.
type GraphElement struct {
	PageNumber    int    `json:"page_number"`
	GraphType     string `json:"graph_type"`
	Axes          Axes   `json:"axes"`
	ExtractedText string `json:"extracted_text"`
	Type          string `json:"type"`
}

// VisualStats aggregates across all pages. Error carries the whole-document
// failure marker when rasterization itself fails.
type VisualStats struct {
	TotalImages        int    `json:"total_images"`
	TotalGraphs        int    `json:"total_graphs"`
	TotalTextExtracted int    `json:"total_text_extracted"`
	Error              string `json:"error,omitempty"`
}

// VisualResult is the visual structurer output.
type VisualResult struct {
	Images     []ImageElement `json:"images"`
	Graphs     []GraphElement `json:"graphs"`
	Statistics VisualStats    `json:"statistics"`
}

// Extracted is the fused output of one processed document.
type Extracted struct {
	Metadata       Metadata      `json:"metadata"`
	Text           TextResult    `json:"text"`
	Tables         []TableRecord `json:"tables"`
	VisualElements VisualResult  `json:"visual_elements"`
}
