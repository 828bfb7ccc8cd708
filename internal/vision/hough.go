package vision

import (
	"image"
	"math"
	"sort"
)

// HoughParams tunes the probabilistic line search.
type HoughParams struct {
	Threshold     int // minimum accumulator votes for a candidate line
	MinLineLength int // shortest segment kept, in pixels
	MaxLineGap    int // largest gap bridged within one segment, in pixels
}

// DefaultHoughParams matches the extraction pipeline's settings.
func DefaultHoughParams() HoughParams {
	return HoughParams{Threshold: 100, MinLineLength: 100, MaxLineGap: 10}
}

// HoughLinesP finds line segments in a binary edge map. Candidate lines are
// voted in a 1px/1-degree rho-theta accumulator; for each line over the vote
// threshold, edge pixels near it are chained into segments, bridging gaps up
// to MaxLineGap and discarding chains shorter than MinLineLength. Pixels
// consumed by a segment do not vote again.
func HoughLinesP(edges *image.Gray, p HoughParams) []Segment {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	type pt struct{ x, y int }
	var points []pt
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[y*edges.Stride+x] != 0 {
				points = append(points, pt{x, y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	const numTheta = 180
	sins := make([]float64, numTheta)
	coss := make([]float64, numTheta)
	for t := 0; t < numTheta; t++ {
		rad := float64(t) * math.Pi / numTheta
		sins[t] = math.Sin(rad)
		coss[t] = math.Cos(rad)
	}

	maxRho := int(math.Hypot(float64(w), float64(h))) + 1
	acc := make([]int, numTheta*(2*maxRho))
	for _, p := range points {
		for t := 0; t < numTheta; t++ {
			rho := int(math.Round(float64(p.x)*coss[t]+float64(p.y)*sins[t])) + maxRho
			acc[t*(2*maxRho)+rho]++
		}
	}

	type bin struct{ t, rho, votes int }
	var bins []bin
	for t := 0; t < numTheta; t++ {
		for r := 0; r < 2*maxRho; r++ {
			if v := acc[t*(2*maxRho)+r]; v >= p.Threshold {
				bins = append(bins, bin{t: t, rho: r - maxRho, votes: v})
			}
		}
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].votes > bins[j].votes })

	used := make([]bool, len(points))
	var segments []Segment

	for _, bn := range bins {
		cosT, sinT := coss[bn.t], sins[bn.t]

		// Collect unused edge points within one pixel of the line.
		type proj struct {
			idx int
			pos float64
		}
		var hits []proj
		for i, pnt := range points {
			if used[i] {
				continue
			}
			d := float64(pnt.x)*cosT + float64(pnt.y)*sinT - float64(bn.rho)
			if math.Abs(d) <= 1 {
				// Position along the line direction (-sin, cos).
				hits = append(hits, proj{idx: i, pos: -float64(pnt.x)*sinT + float64(pnt.y)*cosT})
			}
		}
		if len(hits) < 2 {
			continue
		}
		sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

		start := 0
		for i := 1; i <= len(hits); i++ {
			if i < len(hits) && hits[i].pos-hits[i-1].pos <= float64(p.MaxLineGap) {
				continue
			}
			run := hits[start:i]
			if len(run) >= 2 {
				a := points[run[0].idx]
				z := points[run[len(run)-1].idx]
				seg := Segment{X1: a.x, Y1: a.y, X2: z.x, Y2: z.y}
				if seg.Length() >= float64(p.MinLineLength) {
					segments = append(segments, seg)
					for _, hp := range run {
						used[hp.idx] = true
					}
				}
			}
			start = i
		}
	}
	return segments
}
