package detect

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
)

// Kind is the opening category.
type Kind string

const (
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
	KindArch   Kind = "arch"
)

// Opening is a detected door, window or arch.
//
// Method records which heuristic found it ("opening", "swing", "swing_curve",
// "symbol", "dark_rectangle", "wall_break", "parallel_lines", "curved",
// "wide_opening"); the method determines which extent fields are meaningful.
// WallRefs index into the pipeline's final wall slice for openings bounded by
// known walls; the reference carries no ownership, walls outlive openings.
type Opening struct {
	Kind           Kind           `json:"kind"`
	Method         string         `json:"method"`
	Position       geometry.Point `json:"position"`
	Width          float64        `json:"width,omitempty"`
	Height         float64        `json:"height,omitempty"`
	Radius         float64        `json:"radius,omitempty"`
	Confidence     float64        `json:"confidence"`
	SwingDirection string         `json:"swing_direction,omitempty"`
	WallRefs       []int          `json:"wall_refs,omitempty"`
}

// Config holds the opening-detection thresholds. All distances and areas are
// in pixels; the defaults assume the common 2px-per-inch plan scale, where a
// standard door is 60-to-100px wide.
type Config struct {
	// DedupRadius clusters detections of the same physical opening.
	DedupRadius float64 `json:"dedup_radius"`

	// Door gap between parallel walls, and how bright its interior must be.
	DoorGapMin         float64 `json:"door_gap_min"`
	DoorGapMax         float64 `json:"door_gap_max"`
	DoorOpenBrightness float64 `json:"door_open_brightness"`

	// Door swing arcs found by the circle transform.
	SwingRadiusMin  int     `json:"swing_radius_min"`
	SwingRadiusMax  int     `json:"swing_radius_max"`
	SwingArcMinFrac float64 `json:"swing_arc_min_frac"`
	SwingArcMaxFrac float64 `json:"swing_arc_max_frac"`

	// Door swing arcs found as partial-circle contours.
	CurveArcMin    float64 `json:"curve_arc_min"`
	CurveArcMax    float64 `json:"curve_arc_max"`
	CurveRadiusMin float64 `json:"curve_radius_min"`
	CurveRadiusMax float64 `json:"curve_radius_max"`

	// Door symbols: small tall rectangles next to a wall.
	SymbolAreaMin   int     `json:"symbol_area_min"`
	SymbolAreaMax   int     `json:"symbol_area_max"`
	SymbolAspectMin float64 `json:"symbol_aspect_min"`
	SymbolAspectMax float64 `json:"symbol_aspect_max"`

	// MaxDoors is the realistic per-plan ceiling; lowest confidence drops
	// first.
	MaxDoors int `json:"max_doors"`

	// Window symbols and intensity patterns.
	WindowAreaMin       int     `json:"window_area_min"`
	WindowAreaMax       int     `json:"window_area_max"`
	WindowAspectMin     float64 `json:"window_aspect_min"`
	WindowAspectMax     float64 `json:"window_aspect_max"`
	WindowWallTolerance float64 `json:"window_wall_tolerance"`
	WindowSampleStep    float64 `json:"window_sample_step"`
	WindowPatternStep   float64 `json:"window_pattern_step"`

	// Arches: partial-circle contours beyond door-swing radius, and wide
	// wall gaps.
	ArchRadiusMin float64 `json:"arch_radius_min"`
	ArchRadiusMax float64 `json:"arch_radius_max"`
	ArchGapMin    float64 `json:"arch_gap_min"`
	ArchGapMax    float64 `json:"arch_gap_max"`
	MaxArches     int     `json:"max_arches"`
}

// DefaultConfig returns the opening-detection thresholds.
func DefaultConfig() Config {
	return Config{
		DedupRadius:        30,
		DoorGapMin:         50,
		DoorGapMax:         100,
		DoorOpenBrightness: 200,
		SwingRadiusMin:     20,
		SwingRadiusMax:     80,
		SwingArcMinFrac:    0.2,
		SwingArcMaxFrac:    0.6,
		CurveArcMin:        60,
		CurveArcMax:        300,
		CurveRadiusMin:     25,
		CurveRadiusMax:     85,
		SymbolAreaMin:      200,
		SymbolAreaMax:      2000,
		SymbolAspectMin:    1.5,
		SymbolAspectMax:    3.0,
		MaxDoors:           20,
		WindowAreaMin:      50,
		WindowAreaMax:      1500,
		WindowAspectMin:    0.5,
		WindowAspectMax:    5.0,
		WindowWallTolerance: 20,
		WindowSampleStep:    15,
		WindowPatternStep:   20,
		ArchRadiusMin:       85,
		ArchRadiusMax:       150,
		ArchGapMin:          150,
		ArchGapMax:          250,
		MaxArches:           15,
	}
}

// Dedup collapses detections within radius of an already kept, stronger
// detection.
//
// Candidates are considered in confidence order, so each spatial cluster
// keeps exactly its highest-confidence member. Running Dedup on its own
// output is a no-op: every surviving pair is at least radius apart. The
// result is never nil, so detector outputs encode as JSON arrays.
func Dedup(openings []Opening, radius float64) []Opening {
	if len(openings) <= 1 {
		return append([]Opening{}, openings...)
	}

	sorted := make([]Opening, len(openings))
	copy(sorted, openings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]Opening, 0, len(sorted))
	for _, o := range sorted {
		duplicate := false
		for _, k := range kept {
			dx := float64(o.Position.X - k.Position.X)
			dy := float64(o.Position.Y - k.Position.Y)
			if math.Hypot(dx, dy) < radius {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, o)
		}
	}
	return kept
}

// CapByConfidence truncates to the max strongest openings. max <= 0 means
// uncapped.
func CapByConfidence(openings []Opening, max int) []Opening {
	if max <= 0 || len(openings) <= max {
		return openings
	}
	sorted := make([]Opening, len(openings))
	copy(sorted, openings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted[:max]
}

// wallsParallel reports whether two walls run in the same direction within
// the grouping tolerance; a 180-degree flip is still parallel.
func wallsParallel(a, b geometry.Wall) bool {
	diff := math.Abs(a.Angle - b.Angle)
	return diff < 15 || diff > 165
}

// gapCenter returns the midpoint between two walls' midpoints.
func gapCenter(a, b geometry.Wall) geometry.Point {
	ax, ay := a.Midpoint()
	bx, by := b.Midpoint()
	return geometry.Point{
		X: int(math.Round((ax + bx) / 2)),
		Y: int(math.Round((ay + by) / 2)),
	}
}

// recoverDetector swallows a panic inside one heuristic, discarding its
// candidates. Detection is best-effort: a degenerate contour or zero-length
// wall must never abort the stage, only lose that method's contribution.
func recoverDetector(out *[]Opening) {
	if r := recover(); r != nil {
		*out = nil
	}
}
