package detect

import (
	"math"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Doors detects door openings, swing arcs and door symbols.
//
// Three independent heuristics contribute candidates, matching the ways
// doors appear on plans: a gap between parallel walls, a quarter-circle
// swing arc, or a small tall rectangle drawn at the opening. The union is
// deduplicated by proximity and capped at the realistic per-plan maximum.
func Doors(r *imaging.Raster, edges *imaging.EdgeMap, walls []geometry.Wall, cfg Config) []Opening {
	var doors []Opening
	doors = append(doors, doorGaps(r, walls, cfg)...)
	doors = append(doors, doorSwings(r, edges, cfg)...)
	doors = append(doors, doorSwingCurves(edges, cfg)...)
	doors = append(doors, doorSymbols(r, walls, cfg)...)

	doors = Dedup(doors, cfg.DedupRadius)
	return CapByConfidence(doors, cfg.MaxDoors)
}

// doorGaps finds door-width gaps between parallel walls whose interior is
// bright (open floor rather than more wall).
func doorGaps(r *imaging.Raster, walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			if !wallsParallel(walls[i], walls[j]) {
				continue
			}
			gap := geometry.MidpointDistance(walls[i].Segment, walls[j].Segment)
			if gap <= cfg.DoorGapMin || gap >= cfg.DoorGapMax {
				continue
			}
			center := gapCenter(walls[i], walls[j])
			mean, ok := r.RegionMean(center.X-10, center.Y-10, center.X+10, center.Y+10)
			if !ok || mean <= cfg.DoorOpenBrightness {
				continue
			}
			out = append(out, Opening{
				Kind:       KindDoor,
				Method:     "opening",
				Position:   center,
				Width:      gap,
				Confidence: 0.7,
				WallRefs:   []int{i, j},
			})
		}
	}
	return out
}

// doorSwings finds swing arcs via the circle transform: a detected circle
// whose circumference is only partially inked is an arc, not a full circle.
func doorSwings(r *imaging.Raster, edges *imaging.EdgeMap, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for _, c := range houghCircles(edges, cfg.SwingRadiusMin, cfg.SwingRadiusMax) {
		if !isSwingArc(r, c, cfg) {
			continue
		}
		out = append(out, Opening{
			Kind:           KindDoor,
			Method:         "swing",
			Position:       geometry.Point{X: c.X, Y: c.Y},
			Radius:         float64(c.Radius),
			Confidence:     0.8,
			SwingDirection: swingDirection(r, c),
		})
	}
	return out
}

// isSwingArc samples 12 points around the circle and requires between 20%
// and 60% of them to land on ink: a door swing covers roughly one quadrant,
// a full circle (column, fixture) covers nearly all of it.
func isSwingArc(r *imaging.Raster, c Circle, cfg Config) bool {
	const samples = 12
	inked := 0
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / samples
		px := c.X + int(float64(c.Radius)*math.Cos(angle))
		py := c.Y + int(float64(c.Radius)*math.Sin(angle))
		if r.At(px, py) < 100 {
			inked++
		}
	}
	frac := float64(inked) / samples
	return frac > cfg.SwingArcMinFrac && frac < cfg.SwingArcMaxFrac
}

// swingDirection reports which way the door opens by finding the quadrant
// holding most of the arc ink.
func swingDirection(r *imaging.Raster, c Circle) string {
	var quadrants [4]int
	const samples = 32
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / samples
		px := c.X + int(float64(c.Radius)*math.Cos(angle))
		py := c.Y + int(float64(c.Radius)*math.Sin(angle))
		if r.At(px, py) >= 100 {
			continue
		}
		switch {
		case angle < math.Pi/2:
			quadrants[0]++
		case angle < math.Pi:
			quadrants[1]++
		case angle < 3*math.Pi/2:
			quadrants[2]++
		default:
			quadrants[3]++
		}
	}

	best := 0
	for q := 1; q < 4; q++ {
		if quadrants[q] > quadrants[best] {
			best = q
		}
	}
	// Right-side quadrants swing right, left-side quadrants swing left.
	return [...]string{"right", "left", "left", "right"}[best]
}

// doorSwingCurves finds swing arcs as contours: stroke runs of arc length
// whose points fit a partial circle spanning roughly a quadrant.
func doorSwingCurves(edges *imaging.EdgeMap, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for _, contour := range FindContours(edges, 10) {
		arc := contour.ArcLength()
		if arc <= cfg.CurveArcMin || arc >= cfg.CurveArcMax {
			continue
		}
		cx, cy, radius := contour.BoundingCircle()
		if radius <= cfg.CurveRadiusMin || radius >= cfg.CurveRadiusMax {
			continue
		}
		span := contour.AngularSpan(cx, cy)
		if span <= math.Pi/3 || span >= 2*math.Pi/3 {
			continue
		}

		direction := "counterclockwise"
		if contour[0].X < contour[len(contour)-1].X {
			direction = "clockwise"
		}
		out = append(out, Opening{
			Kind:           KindDoor,
			Method:         "swing_curve",
			Position:       geometry.Point{X: int(math.Round(cx)), Y: int(math.Round(cy))},
			Radius:         radius,
			Confidence:     0.7,
			SwingDirection: direction,
		})
	}
	return out
}

// doorSymbols finds door symbols: small, taller-than-wide ink rectangles
// drawn next to a wall.
func doorSymbols(r *imaging.Raster, walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	mask := darkMask(r)
	for _, comp := range FindComponents(mask, r.Width, r.Height, 10) {
		area := len(comp)
		if area <= cfg.SymbolAreaMin || area >= cfg.SymbolAreaMax {
			continue
		}
		minX, minY, maxX, maxY := comp.Bounds()
		w := maxX - minX + 1
		h := maxY - minY + 1
		if w == 0 {
			continue
		}
		aspect := float64(h) / float64(w)
		if aspect <= cfg.SymbolAspectMin || aspect >= cfg.SymbolAspectMax {
			continue
		}
		center := geometry.Point{X: minX + w/2, Y: minY + h/2}
		if !geometry.NearWall(center, walls, 0) {
			continue
		}
		out = append(out, Opening{
			Kind:       KindDoor,
			Method:     "symbol",
			Position:   center,
			Width:      float64(w),
			Height:     float64(h),
			Confidence: 0.6,
		})
	}
	return out
}
