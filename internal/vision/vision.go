// Package vision implements the line-geometry heuristics used to tell
// chart-like pages from plain images: edge detection, a probabilistic Hough
// line search, orientation bucketing, and graph sub-type classification.
// Everything here is a pure function over explicit inputs.
package vision

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// Segment is a detected line segment in pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// AngleDeg returns the segment's absolute angle from horizontal in degrees,
// in [0, 180).
func (s Segment) AngleDeg() float64 {
	return math.Abs(math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1)) * 180 / math.Pi)
}

// Length returns the euclidean length in pixels.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Hypot(dx, dy)
}

// Horizontal reports whether the segment falls in the horizontal angle band.
func (s Segment) Horizontal() bool {
	a := s.AngleDeg()
	return a < 10 || a > 170
}

// Vertical reports whether the segment falls in the vertical angle band.
func (s Segment) Vertical() bool {
	a := s.AngleDeg()
	return a > 80 && a < 100
}

// SplitByOrientation buckets segments into horizontal and vertical bands.
// Segments outside both bands are discarded.
func SplitByOrientation(segments []Segment) (horizontal, vertical []Segment) {
	for _, s := range segments {
		switch {
		case s.Horizontal():
			horizontal = append(horizontal, s)
		case s.Vertical():
			vertical = append(vertical, s)
		}
	}
	return horizontal, vertical
}

// IsGraph applies the detection rule: at least two horizontal and two
// vertical line segments.
func IsGraph(horizontal, vertical []Segment) bool {
	return len(horizontal) >= 2 && len(vertical) >= 2
}

// Graph sub-types. Values match the recorded graph_type strings.
const (
	GridChart    = "grid_chart"
	BarChart     = "bar_chart"
	LineGraph    = "line_graph"
	UnknownGraph = "unknown_graph_type"
)

// ClassifyGraph picks a sub-type from line spacing: near-equal mean spacing
// on both axes is a grid, more verticals than horizontals is a bar chart,
// otherwise a line graph. Degenerate inputs yield UnknownGraph.
func ClassifyGraph(horizontal, vertical []Segment) string {
	if len(horizontal) < 2 || len(vertical) < 2 {
		return UnknownGraph
	}

	vxs := make([]float64, len(vertical))
	for i, s := range vertical {
		vxs[i] = float64(s.X1)
	}
	hys := make([]float64, len(horizontal))
	for i, s := range horizontal {
		hys[i] = float64(s.Y1)
	}
	sort.Float64s(vxs)
	sort.Float64s(hys)

	vSpacing := meanGap(vxs)
	hSpacing := meanGap(hys)
	if math.IsNaN(vSpacing) || math.IsNaN(hSpacing) {
		return UnknownGraph
	}

	if math.Abs(vSpacing-hSpacing) < 10 {
		return GridChart
	}
	if len(vertical) > len(horizontal) {
		return BarChart
	}
	return LineGraph
}

func meanGap(sorted []float64) float64 {
	if len(sorted) < 2 {
		return math.NaN()
	}
	var sum float64
	for i := 1; i < len(sorted); i++ {
		sum += sorted[i] - sorted[i-1]
	}
	return sum / float64(len(sorted)-1)
}

// Grayscale converts any image to 8-bit gray.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}
