package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestSegmentOrientation(t *testing.T) {
	horizontal := Segment{X1: 0, Y1: 50, X2: 200, Y2: 50}
	if !horizontal.Horizontal() || horizontal.Vertical() {
		t.Errorf("flat segment misclassified: angle=%.1f", horizontal.AngleDeg())
	}

	vertical := Segment{X1: 50, Y1: 0, X2: 50, Y2: 200}
	if !vertical.Vertical() || vertical.Horizontal() {
		t.Errorf("upright segment misclassified: angle=%.1f", vertical.AngleDeg())
	}

	diagonal := Segment{X1: 0, Y1: 0, X2: 100, Y2: 100}
	if diagonal.Horizontal() || diagonal.Vertical() {
		t.Errorf("45-degree segment should fall outside both bands: angle=%.1f", diagonal.AngleDeg())
	}
}

func TestSplitByOrientation_DiscardsDiagonals(t *testing.T) {
	segments := []Segment{
		{X1: 0, Y1: 10, X2: 300, Y2: 10},
		{X1: 40, Y1: 0, X2: 40, Y2: 300},
		{X1: 0, Y1: 0, X2: 100, Y2: 100},
	}
	h, v := SplitByOrientation(segments)
	if len(h) != 1 || len(v) != 1 {
		t.Errorf("SplitByOrientation: got %d horizontal, %d vertical", len(h), len(v))
	}
}

func TestIsGraph(t *testing.T) {
	h := []Segment{{X1: 0, Y1: 0, X2: 200, Y2: 0}, {X1: 0, Y1: 100, X2: 200, Y2: 100}}
	v := []Segment{{X1: 0, Y1: 0, X2: 0, Y2: 200}, {X1: 100, Y1: 0, X2: 100, Y2: 200}}

	if !IsGraph(h, v) {
		t.Error("two horizontals and two verticals should qualify as a graph")
	}
	if IsGraph(h[:1], v) || IsGraph(h, nil) {
		t.Error("fewer than two lines on either axis should not qualify")
	}
}

func horizontalsAt(ys ...int) []Segment {
	out := make([]Segment, len(ys))
	for i, y := range ys {
		out[i] = Segment{X1: 0, Y1: y, X2: 400, Y2: y}
	}
	return out
}

func verticalsAt(xs ...int) []Segment {
	out := make([]Segment, len(xs))
	for i, x := range xs {
		out[i] = Segment{X1: x, Y1: 0, X2: x, Y2: 400}
	}
	return out
}

func TestClassifyGraph(t *testing.T) {
	cases := []struct {
		name string
		h    []Segment
		v    []Segment
		want string
	}{
		{
			name: "equal spacing is a grid",
			h:    horizontalsAt(0, 100, 200),
			v:    verticalsAt(0, 100, 200),
			want: GridChart,
		},
		{
			name: "more verticals than horizontals is a bar chart",
			h:    horizontalsAt(0, 300),
			v:    verticalsAt(0, 50, 100, 200),
			want: BarChart,
		},
		{
			name: "uneven spacing without vertical dominance is a line graph",
			h:    horizontalsAt(0, 100, 200),
			v:    verticalsAt(0, 400),
			want: LineGraph,
		},
		{
			name: "too few lines is unknown",
			h:    horizontalsAt(0),
			v:    verticalsAt(0, 100),
			want: UnknownGraph,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyGraph(c.h, c.v); got != c.want {
				t.Errorf("ClassifyGraph = %q, want %q", got, c.want)
			}
		})
	}
}

// syntheticGrid draws three vertical and three horizontal black lines, three
// pixels wide, on a white 400x400 canvas.
func syntheticGrid() image.Image {
	img := image.NewGray(image.Rect(0, 0, 400, 400))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, c := range []int{100, 200, 300} {
		for off := 0; off < 3; off++ {
			for p := 0; p < 400; p++ {
				img.SetGray(c+off, p, color.Gray{Y: 0})
				img.SetGray(p, c+off, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestDetectGridLines(t *testing.T) {
	gray := Grayscale(syntheticGrid())
	edges := Canny(gray, 50, 150)

	segments := HoughLinesP(edges, DefaultHoughParams())
	if len(segments) == 0 {
		t.Fatal("no segments detected in synthetic grid")
	}

	h, v := SplitByOrientation(segments)
	if len(h) < 2 || len(v) < 2 {
		t.Fatalf("expected at least 2 lines per axis, got %d horizontal, %d vertical", len(h), len(v))
	}
	if !IsGraph(h, v) {
		t.Error("synthetic grid should be detected as a graph")
	}
	if got := ClassifyGraph(h, v); got != GridChart {
		t.Errorf("ClassifyGraph = %q, want %q", got, GridChart)
	}

	for _, s := range segments {
		if s.Length() < float64(DefaultHoughParams().MinLineLength) {
			t.Errorf("segment shorter than minimum length: %+v", s)
		}
	}
}

func TestCanny_BlankImageHasNoEdges(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	edges := Canny(img, 50, 150)
	for i, p := range edges.Pix {
		if p != 0 {
			t.Fatalf("edge pixel found at index %d in uniform image", i)
		}
	}
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{A: 255})

	gray := Grayscale(src)
	if gray.GrayAt(0, 0).Y != 255 {
		t.Errorf("white pixel converted to %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 0 {
		t.Errorf("black pixel converted to %d", gray.GrayAt(1, 0).Y)
	}

	same := image.NewGray(image.Rect(0, 0, 1, 1))
	if Grayscale(same) != same {
		t.Error("gray input should be returned as-is")
	}
}
