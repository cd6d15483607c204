package geometry

import "math"

// DistanceBand maps an average segment length to the maximum midpoint
// distance at which two parallel segments still belong to one wall. Wall
// stroke separation scales with drawing scale, so larger plans tolerate
// wider spacing.
type DistanceBand struct {
	MinAvgLength float64 `json:"min_avg_length"`
	MaxDistance  float64 `json:"max_distance"`
}

// GroupConfig controls parallel-and-close grouping.
type GroupConfig struct {
	// MaxAngleDiff is the largest angle difference, in degrees, for two
	// segments to count as parallel. Wraparound at 360 is handled.
	MaxAngleDiff float64 `json:"max_angle_diff"`

	// MinDistance excludes coincident re-detections of the same stroke;
	// those collapse through consolidation without needing a group.
	MinDistance float64 `json:"min_distance"`

	// DistanceBands must be ordered by MinAvgLength descending; the first
	// band whose MinAvgLength the pair's average length exceeds applies.
	DistanceBands []DistanceBand `json:"distance_bands"`
}

// DefaultGroupConfig returns the scale-adaptive grouping thresholds.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		MaxAngleDiff: 15,
		MinDistance:  1,
		DistanceBands: []DistanceBand{
			{MinAvgLength: 500, MaxDistance: 50},
			{MinAvgLength: 200, MaxDistance: 30},
			{MinAvgLength: 0, MaxDistance: 15},
		},
	}
}

// ParallelAndClose reports whether two segments plausibly trace the same
// physical wall: angles within MaxAngleDiff of each other and midpoints
// separated by more than MinDistance but less than the scale-adaptive band
// maximum.
func ParallelAndClose(a, b Segment, cfg GroupConfig) bool {
	angleDiff := math.Abs(a.Angle - b.Angle)
	if angleDiff > 180 {
		angleDiff = 360 - angleDiff
	}
	if angleDiff > cfg.MaxAngleDiff {
		return false
	}

	dist := MidpointDistance(a, b)
	maxDist := cfg.maxDistanceFor((a.Length + b.Length) / 2)
	return dist > cfg.MinDistance && dist < maxDist
}

func (cfg GroupConfig) maxDistanceFor(avgLength float64) float64 {
	for _, band := range cfg.DistanceBands {
		if avgLength > band.MinAvgLength {
			return band.MaxDistance
		}
	}
	if n := len(cfg.DistanceBands); n > 0 {
		return cfg.DistanceBands[n-1].MaxDistance
	}
	return 0
}

// GroupSegments clusters segments transitively under the parallel-and-close
// relation: a group absorbs any ungrouped segment close to any of its
// members, repeating until the group stops growing. Every segment lands in
// exactly one group; isolated segments form singleton groups.
//
// The pairwise scan is O(n^2) in the segment count, which the Hough stage
// bounds (hundreds of segments, not millions).
func GroupSegments(segments []Segment, cfg GroupConfig) [][]Segment {
	var groups [][]Segment
	used := make([]bool, len(segments))

	for i := range segments {
		if used[i] {
			continue
		}

		group := []Segment{segments[i]}
		used[i] = true

		// Worklist expansion: newly absorbed members can pull in
		// segments the seed could not reach directly.
		for grew := true; grew; {
			grew = false
			for _, member := range group {
				for j := range segments {
					if used[j] {
						continue
					}
					if ParallelAndClose(member, segments[j], cfg) {
						group = append(group, segments[j])
						used[j] = true
						grew = true
					}
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}
