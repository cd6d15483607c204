package geometry

import (
	"math"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Orientation is the fuzzy angle class of a segment.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
	Diagonal   Orientation = "diagonal"
)

// Source records how a segment came to be.
type Source string

const (
	// SourceRaw marks a segment taken directly from line detection.
	SourceRaw Source = "raw"

	// SourceConsolidated marks a segment merged from a group of parallel
	// strokes believed to be the two faces of one wall.
	SourceConsolidated Source = "consolidated"
)

// Segment is a detected line segment with derived wall attributes.
//
// Segments are immutable once built: consolidation and scoring produce new
// values rather than mutating earlier stages' output.
type Segment struct {
	Start       Point       `json:"start"`
	End         Point       `json:"end"`
	Length      float64     `json:"length"`
	Angle       float64     `json:"angle"`
	Orientation Orientation `json:"type"`
	Confidence  float64     `json:"confidence"`
	Thickness   float64     `json:"thickness"`
	Sketchy     bool        `json:"is_sketchy"`
	Source      Source      `json:"source"`
}

// NewSegment builds a segment from raw endpoints, deriving length and angle.
// Angle is atan2(dy, dx) in degrees, in (-180, 180].
func NewSegment(x1, y1, x2, y2 int) Segment {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return Segment{
		Start:  Point{X: x1, Y: y1},
		End:    Point{X: x2, Y: y2},
		Length: math.Hypot(dx, dy),
		Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
		Source: SourceRaw,
	}
}

// Midpoint returns the segment midpoint as floats.
func (s Segment) Midpoint() (float64, float64) {
	return float64(s.Start.X+s.End.X) / 2, float64(s.Start.Y+s.End.Y) / 2
}

// MidpointDistance returns the distance between two segments' midpoints.
// Midpoints stand in for true segment-to-segment distance throughout the
// grouping heuristics; wall strokes are long relative to their separation,
// so the approximation holds.
func MidpointDistance(a, b Segment) float64 {
	ax, ay := a.Midpoint()
	bx, by := b.Midpoint()
	return math.Hypot(bx-ax, by-ay)
}

// ClassifierConfig holds the fuzzy angle bands and the minimum accepted
// segment length.
type ClassifierConfig struct {
	// AxisTolerance is the half-width in degrees of the horizontal and
	// vertical bands.
	AxisTolerance float64 `json:"axis_tolerance"`

	// DiagonalBand is the half-width in degrees of the 45/135 bands.
	DiagonalBand float64 `json:"diagonal_band"`

	// DiagonalTolerance is the deviation at which diagonal confidence
	// would reach zero; the floor kicks in before it does. Wider than the
	// band itself so confidence at the band edge stays meaningful.
	DiagonalTolerance float64 `json:"diagonal_tolerance"`

	// AxisFloor is the confidence at the edge of an axis band.
	AxisFloor float64 `json:"axis_floor"`

	// DiagonalFloor is the confidence at the edge of a diagonal band.
	DiagonalFloor float64 `json:"diagonal_floor"`

	// MinLength discards segments too short to be walls. 100px keeps the
	// pipeline strict about what counts as structure.
	MinLength float64 `json:"min_length"`
}

// DefaultClassifierConfig returns the bands tuned for hand-drawn and CAD
// plans alike.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		AxisTolerance:     15,
		DiagonalBand:      10,
		DiagonalTolerance: 20,
		AxisFloor:         0.5,
		DiagonalFloor:     0.4,
		MinLength:         100,
	}
}

// ClassifyAngle assigns an orientation with a continuous confidence.
//
// The bands are mutually exclusive by construction:
//
//	horizontal: |angle| < 15 or |angle| > 165
//	vertical:   75 < |angle| < 105
//	diagonal:   35 < |angle| < 55 or 125 < |angle| < 145
//
// Confidence falls linearly from 1.0 at the band center to the configured
// floor at the band edge, modeling acceptable freehand deviation while still
// preferring axis-aligned lines. ok is false when the angle matches no band.
func ClassifyAngle(angle float64, cfg ClassifierConfig) (orient Orientation, confidence float64, ok bool) {
	abs := math.Abs(angle)
	switch {
	case abs < cfg.AxisTolerance || abs > 180-cfg.AxisTolerance:
		deviation := math.Min(abs, math.Abs(abs-180))
		return Horizontal, math.Max(cfg.AxisFloor, 1.0-deviation/cfg.AxisTolerance), true
	case abs > 90-cfg.AxisTolerance && abs < 90+cfg.AxisTolerance:
		deviation := math.Abs(abs - 90)
		return Vertical, math.Max(cfg.AxisFloor, 1.0-deviation/cfg.AxisTolerance), true
	case (abs > 45-cfg.DiagonalBand && abs < 45+cfg.DiagonalBand) ||
		(abs > 135-cfg.DiagonalBand && abs < 135+cfg.DiagonalBand):
		deviation := math.Min(math.Abs(abs-45), math.Abs(abs-135))
		return Diagonal, math.Max(cfg.DiagonalFloor, 1.0-deviation/cfg.DiagonalTolerance), true
	}
	return "", 0, false
}

// ClassifySegments filters raw segments through the fuzzy classifier and
// fills in orientation, confidence and thickness.
//
// Segments matching no band or shorter than cfg.MinLength are discarded;
// an empty result is valid and simply empties the downstream pipeline.
func ClassifySegments(raw []Segment, r *imaging.Raster, cfg ClassifierConfig) []Segment {
	out := make([]Segment, 0, len(raw))
	for _, s := range raw {
		if s.Length <= cfg.MinLength {
			continue
		}
		orient, confidence, ok := ClassifyAngle(s.Angle, cfg)
		if !ok {
			continue
		}
		s.Orientation = orient
		s.Confidence = confidence
		s.Sketchy = confidence < 0.8
		s.Thickness = EstimateThickness(r, s)
		s.Source = SourceRaw
		out = append(out, s)
	}
	return out
}

// Wall thickness clamp in pixels. Anything outside this range is either
// stray ink or a filled region, not a wall stroke.
const (
	MinWallThickness = 3.0
	MaxWallThickness = 25.0
)

// EstimateThickness estimates a segment's stroke thickness by walking
// perpendicular from the midpoint until hitting bright paper on the raster.
//
// The walk starts at 3px (inside the stroke for any plausible wall) and stops
// at the first intensity above 200; the offset doubles to cover both sides.
// Zero-length segments and walks that never exit the stroke fall back to a
// 6px default. The result is clamped to [3, 25].
func EstimateThickness(r *imaging.Raster, s Segment) float64 {
	if s.Length == 0 {
		return 6.0
	}

	dx := float64(s.End.X-s.Start.X) / s.Length
	dy := float64(s.End.Y-s.Start.Y) / s.Length
	perpX := -dy
	perpY := dx

	midX, midY := s.Midpoint()

	thickness := 6.0
	for offset := 3; offset < 20; offset++ {
		sx := int(midX + float64(offset)*perpX)
		sy := int(midY + float64(offset)*perpY)
		if r.At(sx, sy) > 200 {
			thickness = float64(offset * 2)
			break
		}
	}

	return math.Min(math.Max(thickness, MinWallThickness), MaxWallThickness)
}

// PointToLineDistance returns the perpendicular distance from a point to the
// infinite line through a segment. Degenerate (zero-length) segments report
// +Inf so callers naturally skip them.
func PointToLineDistance(px, py float64, s Segment) float64 {
	a := float64(s.End.Y - s.Start.Y)
	b := float64(s.Start.X - s.End.X)
	c := float64(s.End.X*s.Start.Y - s.Start.X*s.End.Y)

	if a == 0 && b == 0 {
		return math.Inf(1)
	}
	return math.Abs(a*px+b*py+c) / math.Hypot(a, b)
}

// DefaultWallTolerance is the near-wall distance used when a detector has no
// reason to widen it.
const DefaultWallTolerance = 15.0

// NearWall reports whether a point lies within tolerance pixels of any wall's
// line. Passing tolerance <= 0 selects DefaultWallTolerance.
func NearWall(p Point, walls []Wall, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultWallTolerance
	}
	for _, w := range walls {
		if PointToLineDistance(float64(p.X), float64(p.Y), w.Segment) < tolerance {
			return true
		}
	}
	return false
}
