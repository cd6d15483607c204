package detect

import (
	"math"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Arches detects arched openings and wide wall passages.
//
// An arch appears either as a drawn curve (a partial circle larger than any
// door swing) or implicitly as a wall gap too wide for a door. Candidates
// are deduplicated by proximity and capped at the realistic per-plan
// maximum.
func Arches(edges *imaging.EdgeMap, walls []geometry.Wall, cfg Config) []Opening {
	var arches []Opening
	arches = append(arches, archCurves(edges, cfg)...)
	arches = append(arches, wideOpenings(walls, cfg)...)

	arches = Dedup(arches, cfg.DedupRadius)
	return CapByConfidence(arches, cfg.MaxArches)
}

// archCurves finds drawn arch tops: partial-circle contours in the radius
// band above door swings, so a swing arc is never double-reported as an
// arch.
func archCurves(edges *imaging.EdgeMap, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for _, contour := range FindContours(edges, 10) {
		arc := contour.ArcLength()
		if arc <= cfg.CurveArcMin || arc >= cfg.CurveArcMax {
			continue
		}
		cx, cy, radius := contour.BoundingCircle()
		if radius <= cfg.ArchRadiusMin || radius >= cfg.ArchRadiusMax {
			continue
		}
		span := contour.AngularSpan(cx, cy)
		if span <= math.Pi/4 || span >= math.Pi {
			continue
		}
		out = append(out, Opening{
			Kind:       KindArch,
			Method:     "curved",
			Position:   geometry.Point{X: int(math.Round(cx)), Y: int(math.Round(cy))},
			Radius:     radius,
			Confidence: 0.6,
		})
	}
	return out
}

// wideOpenings finds passage-width gaps between parallel walls: wider than
// any door, narrower than separate rooms.
func wideOpenings(walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			if !wallsParallel(walls[i], walls[j]) {
				continue
			}
			gap := geometry.MidpointDistance(walls[i].Segment, walls[j].Segment)
			if gap <= cfg.ArchGapMin || gap >= cfg.ArchGapMax {
				continue
			}
			out = append(out, Opening{
				Kind:       KindArch,
				Method:     "wide_opening",
				Position:   gapCenter(walls[i], walls[j]),
				Width:      gap,
				Confidence: 0.6,
				WallRefs:   []int{i, j},
			})
		}
	}
	return out
}
