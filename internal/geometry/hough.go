package geometry

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// HoughPreset bundles the line extraction parameters for one contrast class.
type HoughPreset struct {
	// Threshold is the minimum accumulator votes for a candidate line.
	Threshold int `json:"threshold"`

	// MinLineLength discards traced runs shorter than this, in pixels.
	MinLineLength float64 `json:"min_line_length"`

	// MaxGap is the largest break, in pixels, bridged within one run.
	MaxGap float64 `json:"max_gap"`
}

// HoughConfig selects a preset from the plan's intensity contrast and bounds
// the raw segment count.
type HoughConfig struct {
	// LowContrastMax is the contrast below which a plan is treated as a
	// low-contrast sketch.
	LowContrastMax float64 `json:"low_contrast_max"`

	// HighContrastMin is the contrast above which a plan is treated as a
	// clean CAD export.
	HighContrastMin float64 `json:"high_contrast_min"`

	Low    HoughPreset `json:"low"`
	Medium HoughPreset `json:"medium"`
	High   HoughPreset `json:"high"`

	// MaxSegments defensively bounds the raw segment count; the grouping
	// and noise stages are O(n^2) in it. Segments from the strongest
	// peaks are kept first.
	MaxSegments int `json:"max_segments"`
}

// DefaultHoughConfig returns the presets tuned per drawing quality: low
// contrast sketches need a permissive gap and short minimum length, clean
// CAD exports the opposite.
func DefaultHoughConfig() HoughConfig {
	return HoughConfig{
		LowContrastMax:  30,
		HighContrastMin: 100,
		Low:             HoughPreset{Threshold: 50, MinLineLength: 30, MaxGap: 20},
		Medium:          HoughPreset{Threshold: 100, MinLineLength: 50, MaxGap: 10},
		High:            HoughPreset{Threshold: 150, MinLineLength: 80, MaxGap: 5},
		MaxSegments:     500,
	}
}

// PresetFor returns the preset matching a contrast value.
func (c HoughConfig) PresetFor(contrast float64) HoughPreset {
	switch {
	case contrast < c.LowContrastMax:
		return c.Low
	case contrast > c.HighContrastMin:
		return c.High
	default:
		return c.Medium
	}
}

// DetectSegments extracts straight line segments from an edge map.
//
// A standard Hough accumulator (1px rho steps, 1 degree theta steps) is
// voted by every edge pixel; local maxima above the preset threshold become
// candidate lines. Each candidate is then traced through the edge map:
// points within 2px of the line are ordered along it and split into runs
// wherever the along-line gap exceeds MaxGap, and each run at least
// MinLineLength long becomes one segment. The deterministic trace gives the
// same multi-segment-per-line behavior as a probabilistic transform without
// its run-to-run variation.
//
// Zero detected segments is a valid result, not an error.
func DetectSegments(edges *imaging.EdgeMap, contrast float64, cfg HoughConfig) []Segment {
	preset := cfg.PresetFor(contrast)
	width := edges.Width
	height := edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	maxDist := int(math.Hypot(float64(width), float64(height))) + 1
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space.
	sinTab := make([]float64, numAngles)
	cosTab := make([]float64, numAngles)
	for theta := 0; theta < numAngles; theta++ {
		rad := float64(theta) * math.Pi / 180
		sinTab[theta] = math.Sin(rad)
		cosTab[theta] = math.Cos(rad)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.At(x, y) {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				rho := float64(x)*cosTab[theta] + float64(y)*sinTab[theta]
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Collect local maxima above the preset threshold.
	type peak struct {
		rho   int
		theta int
		votes int
	}
	var peaks []peak
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < preset.Threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rho != peaks[j].rho {
			return peaks[i].rho < peaks[j].rho
		}
		return peaks[i].theta < peaks[j].theta
	})

	var segments []Segment
	for _, p := range peaks {
		if len(segments) >= cfg.MaxSegments {
			break
		}
		cosA := cosTab[p.theta]
		sinA := sinTab[p.theta]
		rho := float64(p.rho)

		// Collect edge points lying on this line, keyed by their
		// position along it.
		type linePoint struct {
			t    float64
			x, y int
		}
		var pts []linePoint
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) < 2.0 {
					t := -float64(x)*sinA + float64(y)*cosA
					pts = append(pts, linePoint{t: t, x: x, y: y})
				}
			}
		}
		if len(pts) == 0 {
			continue
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].t < pts[j].t })

		// Split into runs at gaps wider than MaxGap.
		runStart := 0
		for i := 1; i <= len(pts); i++ {
			if i < len(pts) && pts[i].t-pts[i-1].t <= preset.MaxGap {
				continue
			}
			first := pts[runStart]
			last := pts[i-1]
			runStart = i

			seg := NewSegment(first.x, first.y, last.x, last.y)
			if seg.Length >= preset.MinLineLength {
				segments = append(segments, seg)
				if len(segments) >= cfg.MaxSegments {
					break
				}
			}
		}
	}

	return segments
}
