package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// EdgeMap is a binary edge image produced by Canny detection.
//
// Bits are stored row-major; true marks an edge pixel. An all-false map is a
// valid result for a blank input.
type EdgeMap struct {
	Width  int
	Height int
	Bits   []bool
}

// NewEdgeMap allocates an empty edge map.
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// At reports whether (x, y) is an edge pixel. Out-of-range reads are false.
func (e *EdgeMap) At(x, y int) bool {
	if x < 0 || x >= e.Width || y < 0 || y >= e.Height {
		return false
	}
	return e.Bits[y*e.Width+x]
}

func (e *EdgeMap) set(x, y int) {
	e.Bits[y*e.Width+x] = true
}

// Count returns the number of edge pixels in the map.
func (e *EdgeMap) Count() int {
	n := 0
	for _, b := range e.Bits {
		if b {
			n++
		}
	}
	return n
}

// Density returns the fraction of edge pixels inside the rectangle, clipped
// to the map. Text-heavy regions of a plan show densities above 0.15 while
// plain wall runs stay well below it.
func (e *EdgeMap) Density(x1, y1, x2, y2 int) float64 {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > e.Width {
		x2 = e.Width
	}
	if y2 > e.Height {
		y2 = e.Height
	}
	if x1 >= x2 || y1 >= y2 {
		return 0
	}
	edgeCount := 0
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if e.Bits[y*e.Width+x] {
				edgeCount++
			}
		}
	}
	return float64(edgeCount) / float64((x2-x1)*(y2-y1))
}

// ThresholdPair holds the low/high hysteresis thresholds for one Canny pass.
type ThresholdPair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Canny performs edge detection on an intensity raster.
//
// The implementation follows the classic Canny pipeline:
//
//  1. Gaussian blur to suppress scanner noise
//  2. Sobel gradients (magnitude + direction)
//  3. Non-maximum suppression to thin edges to one pixel
//  4. Hysteresis thresholding: pixels above thresholdHigh are strong edges,
//     pixels between the thresholds are kept only when touching a strong edge
//
// Thresholds are on the 0-255 intensity scale. Lower pairs pick up faint
// pencil strokes at the cost of noise; higher pairs suit clean CAD line work.
func Canny(r *Raster, thresholdLow, thresholdHigh int) *EdgeMap {
	width := r.Width
	height := r.Height
	edges := NewEdgeMap(width, height)
	if width < 3 || height < 3 {
		return edges
	}

	blurred := gaussianSmooth(r)

	// Sobel gradients.
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					v := blurred[py*width+px]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := magnitude[y*width+x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[y*width+x-1]
				n2 = magnitude[y*width+x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[(y-1)*width+x+1]
				n2 = magnitude[(y+1)*width+x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[(y-1)*width+x]
				n2 = magnitude[(y+1)*width+x]
			default:
				n1 = magnitude[(y-1)*width+x-1]
				n2 = magnitude[(y+1)*width+x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}

	// Hysteresis thresholding.
	low := float64(thresholdLow)
	high := float64(thresholdHigh)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y*width+x]
			if val >= high {
				edges.set(x, y)
				continue
			}
			if val < low {
				continue
			}
			hasStrongNeighbor := false
			for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
				for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					if suppressed[py*width+px] >= high {
						hasStrongNeighbor = true
					}
				}
			}
			if hasStrongNeighbor {
				edges.set(x, y)
			}
		}
	}

	return edges
}

// MultiScaleEdges unions Canny passes at each threshold pair and closes small
// gaps in the result.
//
// Sketchy hand drawings, standard scans and precise CAD exports each need a
// different sensitivity; the pixel-wise OR of all passes covers the whole
// range without per-image tuning. The closing step (dilate then erode with a
// 1px radius, a 3x3 structuring element) reconnects strokes broken during
// edge thinning.
func MultiScaleEdges(r *Raster, pairs []ThresholdPair) *EdgeMap {
	combined := NewEdgeMap(r.Width, r.Height)
	for _, p := range pairs {
		pass := Canny(r, p.Low, p.High)
		for i, b := range pass.Bits {
			if b {
				combined.Bits[i] = true
			}
		}
	}
	return closeGaps(combined)
}

// closeGaps applies a morphological close (dilate followed by erode).
func closeGaps(e *EdgeMap) *EdgeMap {
	if e.Width == 0 || e.Height == 0 {
		return e
	}
	img := image.NewGray(image.Rect(0, 0, e.Width, e.Height))
	for y := 0; y < e.Height; y++ {
		for x := 0; x < e.Width; x++ {
			if e.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	closed := effect.Erode(effect.Dilate(img, 1), 1)

	out := NewEdgeMap(e.Width, e.Height)
	for y := 0; y < e.Height; y++ {
		for x := 0; x < e.Width; x++ {
			if closed.RGBAAt(x, y).R >= 128 {
				out.set(x, y)
			}
		}
	}
	return out
}

// gaussianSmooth blurs the raster with a sigma ~1.4 Gaussian and returns the
// result as float intensities.
func gaussianSmooth(r *Raster) []float64 {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)

	blurred := blur.Gaussian(img, 1.4)

	out := make([]float64, r.Width*r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out[y*r.Width+x] = float64(blurred.RGBAAt(x, y).R)
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
