package vision

import (
	"image"
	"math"
)

// Canny runs the Canny edge detector over a grayscale image and returns a
// binary edge map (255 = edge). lo and hi are the hysteresis thresholds on
// gradient magnitude.
func Canny(gray *image.Gray, lo, hi float64) *image.Gray {
	blurred := gaussianBlur(gray)
	mag, dir := sobel(blurred)
	thin := nonMaxSuppress(mag, dir)
	return hysteresis(thin, lo, hi)
}

// 5x5 Gaussian kernel, sigma ~1.4, normalized by 159.
var gaussKernel = [5][5]float64{
	{2, 4, 5, 4, 2},
	{4, 9, 12, 9, 4},
	{5, 12, 15, 12, 5},
	{4, 9, 12, 9, 4},
	{2, 4, 5, 4, 2},
}

func gaussianBlur(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += gaussKernel[ky+2][kx+2] * float64(grayAt(src, x+kx, y+ky))
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / 159)
		}
	}
	return dst
}

// grayAt clamps coordinates to the image border.
func grayAt(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	if x < 0 {
		x = 0
	} else if x >= b.Dx() {
		x = b.Dx() - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.Dy() {
		y = b.Dy() - 1
	}
	return img.Pix[y*img.Stride+x]
}

// sobel returns gradient magnitude and orientation quantized to four
// direction buckets (0=E/W, 1=NE/SW, 2=N/S, 3=NW/SE).
func sobel(src *image.Gray) ([][]float64, [][]int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	mag := make([][]float64, h)
	dir := make([][]int, h)
	for y := 0; y < h; y++ {
		mag[y] = make([]float64, w)
		dir[y] = make([]int, w)
		for x := 0; x < w; x++ {
			gx := -float64(grayAt(src, x-1, y-1)) + float64(grayAt(src, x+1, y-1)) +
				-2*float64(grayAt(src, x-1, y)) + 2*float64(grayAt(src, x+1, y)) +
				-float64(grayAt(src, x-1, y+1)) + float64(grayAt(src, x+1, y+1))
			gy := -float64(grayAt(src, x-1, y-1)) - 2*float64(grayAt(src, x, y-1)) - float64(grayAt(src, x+1, y-1)) +
				float64(grayAt(src, x-1, y+1)) + 2*float64(grayAt(src, x, y+1)) + float64(grayAt(src, x+1, y+1))
			mag[y][x] = math.Hypot(gx, gy)

			angle := math.Atan2(gy, gx) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[y][x] = 0
			case angle < 67.5:
				dir[y][x] = 1
			case angle < 112.5:
				dir[y][x] = 2
			default:
				dir[y][x] = 3
			}
		}
	}
	return mag, dir
}

func nonMaxSuppress(mag [][]float64, dir [][]int) [][]float64 {
	h := len(mag)
	if h == 0 {
		return mag
	}
	w := len(mag[0])
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			var n1, n2 float64
			switch dir[y][x] {
			case 0:
				n1, n2 = magAt(mag, x-1, y), magAt(mag, x+1, y)
			case 1:
				n1, n2 = magAt(mag, x+1, y-1), magAt(mag, x-1, y+1)
			case 2:
				n1, n2 = magAt(mag, x, y-1), magAt(mag, x, y+1)
			default:
				n1, n2 = magAt(mag, x-1, y-1), magAt(mag, x+1, y+1)
			}
			if mag[y][x] >= n1 && mag[y][x] >= n2 {
				out[y][x] = mag[y][x]
			}
		}
	}
	return out
}

func magAt(mag [][]float64, x, y int) float64 {
	if y < 0 || y >= len(mag) || x < 0 || x >= len(mag[0]) {
		return 0
	}
	return mag[y][x]
}

// hysteresis keeps strong edges and weak edges connected to strong ones.
func hysteresis(mag [][]float64, lo, hi float64) *image.Gray {
	h := len(mag)
	if h == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	w := len(mag[0])
	out := image.NewGray(image.Rect(0, 0, w, h))

	type pt struct{ x, y int }
	var stack []pt
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mag[y][x] >= hi {
				out.Pix[y*out.Stride+x] = 255
				stack = append(stack, pt{x, y})
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if out.Pix[ny*out.Stride+nx] == 0 && mag[ny][nx] >= lo {
					out.Pix[ny*out.Stride+nx] = 255
					stack = append(stack, pt{nx, ny})
				}
			}
		}
	}
	return out
}
