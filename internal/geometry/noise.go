package geometry

import (
	"image"
	"sort"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// NoiseConfig controls removal of text strokes, dimension lines and other
// non-structural line work before scoring.
type NoiseConfig struct {
	// ClusterAngleDiff and ClusterDistance define "suspiciously similar":
	// parallel segments packed this close usually render text or hatch
	// marks, not walls.
	ClusterAngleDiff float64 `json:"cluster_angle_diff"`
	ClusterDistance  float64 `json:"cluster_distance"`

	// MaxClusterSize is the largest similar-segment cluster kept whole;
	// bigger clusters are cut down to ClusterKeep longest members.
	MaxClusterSize int `json:"max_cluster_size"`
	ClusterKeep    int `json:"cluster_keep"`

	// Quality floor: a segment survives with either high confidence and
	// moderate length, or sheer length on its own.
	MinConfidence      float64 `json:"min_confidence"`
	MinConfidentLength float64 `json:"min_confident_length"`
	MinLength          float64 `json:"min_length"`

	// TextRegionRadius is the half-size of the neighborhood inspected
	// around each segment midpoint; TextEdgeDensity is the edge fraction
	// above which that neighborhood is considered text-dense.
	TextRegionRadius int     `json:"text_region_radius"`
	TextEdgeDensity  float64 `json:"text_edge_density"`
}

// DefaultNoiseConfig returns the filtering thresholds.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		ClusterAngleDiff:   10,
		ClusterDistance:    30,
		MaxClusterSize:     4,
		ClusterKeep:        2,
		MinConfidence:      0.8,
		MinConfidentLength: 120,
		MinLength:          200,
		TextRegionRadius:   50,
		TextEdgeDensity:    0.15,
	}
}

// FilterNoise removes segments that belong to text or dimension annotation
// rather than structure.
//
// Four passes, cheapest first: dense clusters of short parallel segments are
// thinned to their longest members, a confidence/length quality floor is
// applied, segments sitting in edge-dense (text-like) neighborhoods are
// dropped, and segments whose midpoint falls inside an OCR-confirmed word
// box (when textBoxes is non-nil) are dropped. The survivors come back
// ordered by confidence x length, strongest first.
func FilterNoise(segments []Segment, edges *imaging.EdgeMap, textBoxes []image.Rectangle, cfg NoiseConfig) []Segment {
	clustered := removeTextClusters(segments, cfg)

	quality := clustered[:0:0]
	for _, s := range clustered {
		if (s.Confidence > cfg.MinConfidence && s.Length > cfg.MinConfidentLength) || s.Length > cfg.MinLength {
			quality = append(quality, s)
		}
	}

	filtered := make([]Segment, 0, len(quality))
	for _, s := range quality {
		if inTextArea(s, edges, cfg) {
			continue
		}
		if inWordBox(s, textBoxes) {
			continue
		}
		filtered = append(filtered, s)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence*filtered[i].Length > filtered[j].Confidence*filtered[j].Length
	})
	return filtered
}

// removeTextClusters finds packs of parallel, close segments and keeps only
// the longest few from any pack bigger than MaxClusterSize. Text rendered as
// line strokes shows up as many short parallel segments stacked tightly.
func removeTextClusters(segments []Segment, cfg NoiseConfig) []Segment {
	if len(segments) < 3 {
		return segments
	}

	used := make([]bool, len(segments))
	var kept []Segment

	for i := range segments {
		if used[i] {
			continue
		}
		cluster := []Segment{segments[i]}
		used[i] = true

		for j := i + 1; j < len(segments); j++ {
			if used[j] {
				continue
			}
			angleDiff := segments[i].Angle - segments[j].Angle
			if angleDiff < 0 {
				angleDiff = -angleDiff
			}
			if angleDiff < cfg.ClusterAngleDiff &&
				MidpointDistance(segments[i], segments[j]) < cfg.ClusterDistance {
				cluster = append(cluster, segments[j])
				used[j] = true
			}
		}

		if len(cluster) <= cfg.MaxClusterSize {
			kept = append(kept, cluster...)
			continue
		}
		sort.Slice(cluster, func(a, b int) bool { return cluster[a].Length > cluster[b].Length })
		kept = append(kept, cluster[:cfg.ClusterKeep]...)
	}

	return kept
}

// inTextArea reports whether the neighborhood around the segment midpoint is
// edge-dense enough to be text or dimension detail.
func inTextArea(s Segment, edges *imaging.EdgeMap, cfg NoiseConfig) bool {
	mx, my := s.Midpoint()
	x, y := int(mx), int(my)
	r := cfg.TextRegionRadius
	return edges.Density(x-r, y-r, x+r, y+r) > cfg.TextEdgeDensity
}

func inWordBox(s Segment, boxes []image.Rectangle) bool {
	if len(boxes) == 0 {
		return false
	}
	mx, my := s.Midpoint()
	pt := image.Pt(int(mx), int(my))
	for _, b := range boxes {
		if pt.In(b) {
			return true
		}
	}
	return false
}
