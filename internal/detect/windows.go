package detect

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Windows detects window symbols and window patterns along walls.
//
// Two habits of drawing windows are covered: an explicit dark rectangle
// symbol next to a wall, and the frame pattern visible in the wall stroke
// itself (the dark-light-dark profile of a double-line window). Candidates
// are deduplicated by proximity; windows have no realistic count cap beyond
// that.
func Windows(r *imaging.Raster, walls []geometry.Wall, cfg Config) []Opening {
	var windows []Opening
	windows = append(windows, windowRectangles(r, walls, cfg)...)
	windows = append(windows, windowBreaks(r, walls, cfg)...)
	windows = append(windows, windowParallelLines(r, walls, cfg)...)

	return Dedup(windows, cfg.DedupRadius)
}

// windowRectangles finds dark rectangular window symbols near walls.
func windowRectangles(r *imaging.Raster, walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	mask := darkMask(r)
	for _, comp := range FindComponents(mask, r.Width, r.Height, 10) {
		area := len(comp)
		if area <= cfg.WindowAreaMin || area >= cfg.WindowAreaMax {
			continue
		}
		minX, minY, maxX, maxY := comp.Bounds()
		w := maxX - minX + 1
		h := maxY - minY + 1
		if h == 0 {
			continue
		}
		aspect := float64(w) / float64(h)
		if aspect <= cfg.WindowAspectMin || aspect >= cfg.WindowAspectMax {
			continue
		}
		center := geometry.Point{X: minX + w/2, Y: minY + h/2}
		if !geometry.NearWall(center, walls, cfg.WindowWallTolerance) {
			continue
		}
		out = append(out, Opening{
			Kind:       KindWindow,
			Method:     "dark_rectangle",
			Position:   center,
			Width:      float64(w),
			Height:     float64(h),
			Confidence: 0.8,
		})
	}
	return out
}

// windowBreaks walks each wall sampling the perpendicular intensity profile,
// looking for the frame pattern of a window cut into the wall stroke.
func windowBreaks(r *imaging.Raster, walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for _, wall := range walls {
		if wall.Length < 50 {
			continue
		}
		samples := int(wall.Length / cfg.WindowSampleStep)
		if samples < 15 {
			samples = 15
		}

		var found []geometry.Point
		for i := 1; i < samples-1; i++ {
			t := float64(i) / float64(samples)
			px := int(float64(wall.Start.X) + t*float64(wall.End.X-wall.Start.X))
			py := int(float64(wall.Start.Y) + t*float64(wall.End.Y-wall.Start.Y))

			profile := perpendicularProfile(r, wall, px, py, 20)
			if !hasFramePattern(profile) {
				continue
			}

			tooClose := false
			for _, f := range found {
				if math.Abs(float64(f.X-px)) < 30 && math.Abs(float64(f.Y-py)) < 30 {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}

			p := geometry.Point{X: px, Y: py}
			found = append(found, p)
			out = append(out, Opening{
				Kind:       KindWindow,
				Method:     "wall_break",
				Position:   p,
				Width:      30,
				Height:     15,
				Confidence: 0.6,
			})
		}
	}
	return out
}

// windowParallelLines samples each wall at coarser steps for the simpler
// double-line signature: the stroke center noticeably brighter than its two
// faces.
func windowParallelLines(r *imaging.Raster, walls []geometry.Wall, cfg Config) (out []Opening) {
	defer recoverDetector(&out)

	for _, wall := range walls {
		samples := int(wall.Length / cfg.WindowPatternStep)
		if samples < 10 {
			samples = 10
		}
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(samples)
			px := int(float64(wall.Start.X) + t*float64(wall.End.X-wall.Start.X))
			py := int(float64(wall.Start.Y) + t*float64(wall.End.Y-wall.Start.Y))

			profile := perpendicularProfile(r, wall, px, py, 15)
			if !centerBrighter(profile, 20) {
				continue
			}
			out = append(out, Opening{
				Kind:       KindWindow,
				Method:     "parallel_lines",
				Position:   geometry.Point{X: px, Y: py},
				Width:      40,
				Confidence: 0.6,
			})
		}
	}
	return out
}

// perpendicularProfile samples intensities along the perpendicular through
// (px, py), reach pixels to each side. Samples past the image border read as
// paper (255).
func perpendicularProfile(r *imaging.Raster, wall geometry.Wall, px, py, reach int) []float64 {
	if wall.Length == 0 {
		return nil
	}
	dx := float64(wall.End.X-wall.Start.X) / wall.Length
	dy := float64(wall.End.Y-wall.Start.Y) / wall.Length
	perpX := -dy
	perpY := dx

	profile := make([]float64, 0, 2*reach+1)
	for d := -reach; d <= reach; d++ {
		sx := int(float64(px) + float64(d)*perpX)
		sy := int(float64(py) + float64(d)*perpY)
		profile = append(profile, float64(r.At(sx, sy)))
	}
	return profile
}

// hasFramePattern checks for a window frame signature in an intensity
// profile: after light smoothing, alternating extrema (at least one peak and
// two valleys, the two frame lines around the opening) with strong overall
// contrast.
func hasFramePattern(profile []float64) bool {
	if len(profile) < 10 {
		// Too short to judge structure; fall back to plain variation.
		if len(profile) < 7 {
			return false
		}
		return stat.StdDev(profile, nil) > 20 && stat.Mean(profile, nil) > 120
	}

	smoothed := smooth3(profile)

	peaks, valleys := 0, 0
	for i := 1; i < len(smoothed)-1; i++ {
		switch {
		case smoothed[i] > smoothed[i-1] && smoothed[i] > smoothed[i+1]:
			peaks++
		case smoothed[i] < smoothed[i-1] && smoothed[i] < smoothed[i+1]:
			valleys++
		}
	}
	if peaks < 1 || valleys < 2 {
		return false
	}

	min, max := smoothed[0], smoothed[0]
	for _, v := range smoothed[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max-min > 30
}

// centerBrighter reports whether the profile center exceeds the mean of its
// two ends by at least delta: the opening between a double-line window's
// frame strokes.
func centerBrighter(profile []float64, delta float64) bool {
	if len(profile) < 5 {
		return false
	}
	mid := len(profile) / 2
	center := profile[mid]
	edges := (stat.Mean(profile[:3], nil) + stat.Mean(profile[len(profile)-3:], nil)) / 2
	return center > edges+delta
}

// smooth3 applies a centered 3-tap moving average.
func smooth3(profile []float64) []float64 {
	out := make([]float64, len(profile))
	for i := range profile {
		sum, n := profile[i], 1.0
		if i > 0 {
			sum += profile[i-1]
			n++
		}
		if i < len(profile)-1 {
			sum += profile[i+1]
			n++
		}
		out[i] = sum / n
	}
	return out
}
