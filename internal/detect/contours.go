package detect

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Contour is a connected component of marked pixels.
type Contour []geometry.Point

// FindContours groups connected edge pixels into contours using iterative
// flood fill with 8-connectivity. Components below minSize pixels are
// discarded as noise.
func FindContours(edges *imaging.EdgeMap, minSize int) []Contour {
	return findComponents(edges.Bits, edges.Width, edges.Height, minSize)
}

// FindComponents groups connected true pixels of a row-major mask into
// contours, discarding components below minSize pixels. Used for analyzing
// binarized (thresholded) plan regions.
func FindComponents(mask []bool, width, height, minSize int) []Contour {
	return findComponents(mask, width, height, minSize)
}

func findComponents(bits []bool, width, height, minSize int) []Contour {
	visited := make([]bool, len(bits))
	var contours []Contour

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !bits[idx] || visited[idx] {
				continue
			}
			contour := flood(bits, visited, x, y, width, height)
			if len(contour) >= minSize {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// flood performs stack-based (non-recursive) flood fill from one seed pixel.
func flood(bits, visited []bool, startX, startY, width, height int) Contour {
	var contour Contour
	stack := []geometry.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] || !bits[idx] {
			continue
		}

		visited[idx] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, geometry.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return contour
}

// ArcLength approximates the traced length of a thin stroke contour by its
// pixel count. Exact for 4-connected strokes, slightly high for diagonal
// ones; the arc-length bands are wide enough to absorb that.
func (c Contour) ArcLength() float64 {
	return float64(len(c))
}

// BoundingCircle returns an enclosing circle estimate: the contour centroid
// and the farthest member distance. For arc-shaped contours this tracks the
// arc's circle closely enough for the radius band checks.
func (c Contour) BoundingCircle() (cx, cy, radius float64) {
	if len(c) == 0 {
		return 0, 0, 0
	}
	var sumX, sumY float64
	for _, p := range c {
		sumX += float64(p.X)
		sumY += float64(p.Y)
	}
	cx = sumX / float64(len(c))
	cy = sumY / float64(len(c))

	for _, p := range c {
		if d := math.Hypot(float64(p.X)-cx, float64(p.Y)-cy); d > radius {
			radius = d
		}
	}
	return cx, cy, radius
}

// AngularSpan returns the range of angles the contour's points cover as seen
// from (cx, cy). A full circle approaches 2*pi, a door-swing arc covers
// roughly a quadrant. The span is measured as the full turn minus the widest
// empty sector, so arcs straddling the -pi/pi seam read their true extent.
func (c Contour) AngularSpan(cx, cy float64) float64 {
	if len(c) < 2 {
		return 0
	}
	angles := make([]float64, len(c))
	for i, p := range c {
		angles[i] = math.Atan2(float64(p.Y)-cy, float64(p.X)-cx)
	}
	sort.Float64s(angles)

	widestGap := 2*math.Pi - (angles[len(angles)-1] - angles[0])
	for i := 1; i < len(angles); i++ {
		if gap := angles[i] - angles[i-1]; gap > widestGap {
			widestGap = gap
		}
	}
	return 2*math.Pi - widestGap
}

// Bounds returns the contour's bounding box (inclusive min, inclusive max).
func (c Contour) Bounds() (minX, minY, maxX, maxY int) {
	if len(c) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = c[0].X, c[0].Y
	maxX, maxY = c[0].X, c[0].Y
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
