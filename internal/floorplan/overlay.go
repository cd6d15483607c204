package floorplan

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/ironsheep/floorplan-tools/internal/detect"
	"github.com/ironsheep/floorplan-tools/internal/geometry"
)

// OverlayResult contains the annotated plan image.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

var (
	wallColor      = color.RGBA{220, 40, 40, 255}
	perimeterColor = color.RGBA{160, 20, 140, 255}
	doorColor      = color.RGBA{40, 140, 40, 255}
	windowColor    = color.RGBA{40, 80, 220, 255}
	archColor      = color.RGBA{220, 140, 20, 255}
	labelFg        = color.RGBA{255, 255, 255, 255}
	labelBg        = color.RGBA{0, 0, 0, 180}
)

// RenderOverlay draws the detected walls and openings on top of the source
// image and returns it PNG-encoded. Walls are lines (perimeter walls in a
// distinct color), openings are labeled ring markers.
func RenderOverlay(img image.Image, res *Result) (*OverlayResult, error) {
	if img == nil || res == nil {
		return nil, fmt.Errorf("overlay requires an image and a result")
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for _, w := range res.Walls {
		c := wallColor
		if w.Perimeter {
			c = perimeterColor
		}
		drawLine(out, w.Start, w.End, c)
	}
	for _, d := range res.Doors {
		drawMarker(out, d, 'D', doorColor)
	}
	for _, win := range res.Windows {
		drawMarker(out, win, 'W', windowColor)
	}
	for _, a := range res.Arches {
		drawMarker(out, a, 'A', archColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, a, b geometry.Point, c color.RGBA) {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	bounds := img.Bounds()
	for {
		if x0 >= bounds.Min.X && x0 < bounds.Max.X && y0 >= bounds.Min.Y && y0 < bounds.Max.Y {
			img.Set(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawMarker draws a small ring at the opening position with a one-letter
// glyph beside it.
func drawMarker(img *image.RGBA, o detect.Opening, glyph rune, c color.RGBA) {
	cx, cy := int(o.Position.X), int(o.Position.Y)
	bounds := img.Bounds()

	const radius = 6
	for deg := 0; deg < 360; deg += 5 {
		rad := float64(deg) * math.Pi / 180
		x := cx + int(radius*math.Cos(rad))
		y := cy + int(radius*math.Sin(rad))
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			img.Set(x, y, c)
		}
	}

	drawGlyph(img, cx+radius+3, cy-2, glyph, labelFg, labelBg)
}

// drawGlyph renders a single character from a 3x5 pixel font.
func drawGlyph(img *image.RGBA, x, y int, ch rune, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'D': {"110", "101", "101", "101", "110"},
		'W': {"101", "101", "101", "111", "101"},
		'A': {"010", "101", "111", "101", "101"},
	}
	glyph, ok := glyphs[ch]
	if !ok {
		return
	}

	bounds := img.Bounds()
	for dy := -1; dy < 6; dy++ {
		for dx := -1; dx < 4; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}
	for row, line := range glyph {
		for col, pixel := range line {
			if pixel == '1' {
				px, py := x+col, y+row
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.Set(px, py, fg)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
