package structure

import (
	"image"
	"log/slog"
	"strings"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
	"github.com/VyomThaker-2154/Documind-ai/internal/ocr"
	"github.com/VyomThaker-2154/Documind-ai/internal/vision"
)

// Canny hysteresis thresholds for page edge maps.
const (
	cannyLow  = 50
	cannyHigh = 150
)

// Rasterizer renders a PDF's pages to images at the given DPI.
type Rasterizer func(path string, dpi int) ([]image.Image, error)

// VisualStructurer classifies rasterized pages as graphs or plain images and
// runs OCR tuned per variant.
type VisualStructurer struct {
	raster Rasterizer
	ocr    ocr.Engine
	dpi    int
	hough  vision.HoughParams
	log    *slog.Logger
}

func NewVisualStructurer(raster Rasterizer, engine ocr.Engine, dpi int, log *slog.Logger) *VisualStructurer {
	return &VisualStructurer{
		raster: raster,
		ocr:    engine,
		dpi:    dpi,
		hough:  vision.DefaultHoughParams(),
		log:    log,
	}
}

// Structure processes every page. A page is either a graph candidate or
// falls through to plain-image OCR, never both. A rasterization failure for
// the whole document yields an empty result with an error marker in the
// statistics rather than a hard failure.
func (s *VisualStructurer) Structure(path string) document.VisualResult {
	result := document.VisualResult{
		Images: make([]document.ImageElement, 0),
		Graphs: make([]document.GraphElement, 0),
	}

	pages, err := s.raster(path, s.dpi)
	if err != nil {
		s.log.Error("page rasterization failed", "error", err)
		result.Statistics.Error = err.Error()
		return result
	}

	for pageIdx, img := range pages {
		pageNum := pageIdx + 1

		horizontal, vertical := s.detectLines(img)
		if vision.IsGraph(horizontal, vertical) {
			graphType := vision.ClassifyGraph(horizontal, vertical)
			text := s.recognize(img, ocr.GraphConfig(), pageNum)
			// A graph is recorded even when OCR yields nothing.
			result.Graphs = append(result.Graphs, document.GraphElement{
				PageNumber: pageNum,
				GraphType:  graphType,
				Axes: document.Axes{
					Horizontal: len(horizontal),
					Vertical:   len(vertical),
				},
				ExtractedText: text,
				Type:          graphType,
			})
			result.Statistics.TotalGraphs++
			result.Statistics.TotalTextExtracted += len(strings.Fields(text))
			continue
		}

		text := s.recognize(img, ocr.TextConfig(), pageNum)
		if strings.TrimSpace(text) == "" {
			continue
		}
		words := len(strings.Fields(text))
		result.Images = append(result.Images, document.ImageElement{
			PageNumber:    pageNum,
			ExtractedText: text,
			WordCount:     words,
			Type:          "image",
		})
		result.Statistics.TotalImages++
		result.Statistics.TotalTextExtracted += words
	}

	return result
}

func (s *VisualStructurer) detectLines(img image.Image) (horizontal, vertical []vision.Segment) {
	gray := vision.Grayscale(img)
	edges := vision.Canny(gray, cannyLow, cannyHigh)
	segments := vision.HoughLinesP(edges, s.hough)
	return vision.SplitByOrientation(segments)
}

// recognize runs OCR and degrades a per-page failure to empty text.
func (s *VisualStructurer) recognize(img image.Image, cfg ocr.Config, pageNum int) string {
	text, err := s.ocr.Recognize(img, cfg)
	if err != nil {
		s.log.Warn("ocr failed", "page", pageNum, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
