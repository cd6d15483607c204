package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Raster is a read-only grayscale intensity buffer in row-major order.
//
// Intensities range from 0 (black ink) to 255 (white paper). The pipeline
// stages share one Raster per run and never write to it; derived data (edge
// maps, segments, walls) is always allocated separately.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster allocates a zero-filled raster of the given dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromImage flattens an image to an intensity raster.
//
// Grayscale and near-grayscale sources go through a plain BT.601 luminance
// conversion. Colored plans (hand-tinted scans, CAD exports with colored
// layers) are flattened using perceptual Lab lightness instead, which keeps
// saturated line work dark enough for edge detection where luminance alone
// would wash it out.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := NewRaster(bounds.Dx(), bounds.Dy())

	if isGrayscale(img) {
		gray := imaging.Grayscale(img)
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				c := gray.NRGBAAt(x, y)
				r.Pix[y*r.Width+x] = c.R
			}
		}
		return r
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// Fully transparent pixel; treat as paper.
				r.Pix[y*r.Width+x] = 255
				continue
			}
			l, _, _ := c.Lab()
			if l < 0 {
				l = 0
			} else if l > 1 {
				l = 1
			}
			r.Pix[y*r.Width+x] = uint8(l * 255)
		}
	}
	return r
}

// isGrayscale reports whether the image carries no meaningful chroma.
// Samples a sparse grid rather than every pixel; plans are large.
func isGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}

	bounds := img.Bounds()
	stepX := bounds.Dx()/32 + 1
	stepY := bounds.Dy()/32 + 1
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			if diff16(r, g) > 0x0800 || diff16(g, b) > 0x0800 || diff16(r, b) > 0x0800 {
				return false
			}
		}
	}
	return true
}

func diff16(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// At returns the intensity at (x, y), or 255 (paper) outside the buffer.
// Out-of-range reads come up constantly in perpendicular sampling; treating
// the margin as blank paper is what every caller wants.
func (r *Raster) At(x, y int) uint8 {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 255
	}
	return r.Pix[y*r.Width+x]
}

// Contrast returns the standard deviation of all intensities.
//
// Contrast drives Hough preset selection: pencil sketches sit below 30,
// clean CAD exports above 100.
func (r *Raster) Contrast() float64 {
	if len(r.Pix) == 0 {
		return 0
	}
	vals := make([]float64, len(r.Pix))
	for i, p := range r.Pix {
		vals[i] = float64(p)
	}
	return stat.StdDev(vals, nil)
}

// RegionMean returns the mean intensity of the rectangle clipped to the
// buffer, and false when the clipped region is empty.
func (r *Raster) RegionMean(x1, y1, x2, y2 int) (float64, bool) {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > r.Width {
		x2 = r.Width
	}
	if y2 > r.Height {
		y2 = r.Height
	}
	if x1 >= x2 || y1 >= y2 {
		return 0, false
	}
	vals := make([]float64, 0, (x2-x1)*(y2-y1))
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			vals = append(vals, float64(r.Pix[y*r.Width+x]))
		}
	}
	return stat.Mean(vals, nil), true
}
