package geometry

import "math"

// ConsolidateConfig controls merging a wall group into one wall primitive.
type ConsolidateConfig struct {
	// MinThickness / MaxThickness clamp the thickness derived from group
	// spread. A consolidated wall is never thinner than 4px: two strokes
	// closer than that would not have grouped.
	MinThickness float64 `json:"min_thickness"`
	MaxThickness float64 `json:"max_thickness"`

	// ConfidenceBoost multiplies the representative's confidence; several
	// mutually confirming strokes are stronger evidence than one.
	ConfidenceBoost float64 `json:"confidence_boost"`
}

// DefaultConsolidateConfig returns the standard merge parameters.
func DefaultConsolidateConfig() ConsolidateConfig {
	return ConsolidateConfig{
		MinThickness:    4,
		MaxThickness:    25,
		ConfidenceBoost: 1.2,
	}
}

// Consolidate merges each wall group into a single segment.
//
// Singleton groups pass through unchanged, keeping their raw provenance.
// Larger groups collapse to their longest member, with thickness derived
// from the maximum pairwise midpoint distance in the group: near-parallel
// strokes typically trace the two faces of one physical wall, so their
// separation is the wall's thickness rather than a guess.
func Consolidate(groups [][]Segment, cfg ConsolidateConfig) []Segment {
	var walls []Segment
	for _, group := range groups {
		switch len(group) {
		case 0:
		case 1:
			walls = append(walls, group[0])
		default:
			walls = append(walls, mergeGroup(group, cfg))
		}
	}
	return walls
}

func mergeGroup(group []Segment, cfg ConsolidateConfig) Segment {
	rep := group[0]
	for _, s := range group[1:] {
		if s.Length > rep.Length {
			rep = s
		}
	}

	merged := rep
	merged.Thickness = groupThickness(group, cfg)
	merged.Confidence = math.Min(1.0, rep.Confidence*cfg.ConfidenceBoost)
	merged.Sketchy = false
	merged.Source = SourceConsolidated
	return merged
}

// groupThickness estimates wall thickness as the maximum pairwise midpoint
// distance within the group, clamped to the configured range.
func groupThickness(group []Segment, cfg ConsolidateConfig) float64 {
	maxDist := 0.0
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if d := MidpointDistance(group[i], group[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	if maxDist == 0 {
		return 6.0
	}
	return math.Min(math.Max(maxDist, cfg.MinThickness), cfg.MaxThickness)
}
