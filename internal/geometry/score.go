package geometry

import (
	"math"
	"sort"
)

// Wall is a segment that survived filtering, with its structural importance.
type Wall struct {
	Segment
	StructuralScore float64 `json:"structural_score"`
	Perimeter       bool    `json:"is_perimeter"`
}

// ScoreBucket awards Weight when the measured value exceeds Above.
type ScoreBucket struct {
	Above  float64 `json:"above"`
	Weight float64 `json:"weight"`
}

// CapBand maps a mean wall length to a base wall-count cap: larger-scale
// drawings legitimately contain more walls.
type CapBand struct {
	MinAvgLength float64 `json:"min_avg_length"`
	BaseCount    int     `json:"base_count"`
}

// ScoreConfig holds the structural-importance weights and the adaptive cap
// parameters. The weights are empirical; tests pin today's values but they
// are configuration, not invariants.
type ScoreConfig struct {
	// LengthBuckets and ThicknessBuckets must be ordered by Above
	// descending; the first matching bucket applies.
	LengthBuckets    []ScoreBucket `json:"length_buckets"`
	ThicknessBuckets []ScoreBucket `json:"thickness_buckets"`

	ConsolidatedBonus float64 `json:"consolidated_bonus"`
	PerimeterBonus    float64 `json:"perimeter_bonus"`
	ConfidenceWeight  float64 `json:"confidence_weight"`

	// MinScore drops walls at or below it.
	MinScore float64 `json:"min_score"`

	// EdgeMargin and PerimeterMinLength classify perimeter walls: an
	// endpoint within EdgeMargin of the image border and a substantial
	// length.
	EdgeMargin         int     `json:"edge_margin"`
	PerimeterMinLength float64 `json:"perimeter_min_length"`

	// Adaptive cap: clamp(high + medium/2, MinWalls, base from CapBands),
	// where high and medium count walls above HighScore and MediumScore.
	CapBands    []CapBand `json:"cap_bands"`
	MinWalls    int       `json:"min_walls"`
	HighScore   float64   `json:"high_score"`
	MediumScore float64   `json:"medium_score"`
}

// DefaultScoreConfig returns the empirically tuned weights and caps.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		LengthBuckets: []ScoreBucket{
			{Above: 300, Weight: 0.4},
			{Above: 150, Weight: 0.3},
			{Above: 100, Weight: 0.2},
			{Above: 50, Weight: 0.1},
		},
		ThicknessBuckets: []ScoreBucket{
			{Above: 15, Weight: 0.2},
			{Above: 8, Weight: 0.15},
			{Above: 4, Weight: 0.1},
		},
		ConsolidatedBonus: 0.25,
		PerimeterBonus:    0.2,
		ConfidenceWeight:  0.1,
		MinScore:          0.3,
		EdgeMargin:        50,
		PerimeterMinLength: 200,
		CapBands: []CapBand{
			{MinAvgLength: 400, BaseCount: 35},
			{MinAvgLength: 200, BaseCount: 30},
			{MinAvgLength: 0, BaseCount: 25},
		},
		MinWalls:    15,
		HighScore:   0.7,
		MediumScore: 0.4,
	}
}

func bucketWeight(buckets []ScoreBucket, value float64) float64 {
	for _, b := range buckets {
		if value > b.Above {
			return b.Weight
		}
	}
	return 0
}

// StructuralScore computes a wall's importance in [0, 1].
//
// The score accumulates a length bucket, a thickness bucket, bonuses for
// consolidation provenance and perimeter position, and a small confidence
// term; each term is monotone in its input, so strengthening any attribute
// never lowers the score.
func StructuralScore(s Segment, perimeter bool, cfg ScoreConfig) float64 {
	score := bucketWeight(cfg.LengthBuckets, s.Length)
	score += bucketWeight(cfg.ThicknessBuckets, s.Thickness)
	if s.Source == SourceConsolidated {
		score += cfg.ConsolidatedBonus
	}
	if perimeter {
		score += cfg.PerimeterBonus
	}
	score += s.Confidence * cfg.ConfidenceWeight
	return math.Min(score, 1.0)
}

// IsPerimeter reports whether a segment likely lies on the building
// perimeter: long, with an endpoint near any image border.
func IsPerimeter(s Segment, width, height int, cfg ScoreConfig) bool {
	if s.Length <= cfg.PerimeterMinLength {
		return false
	}
	m := cfg.EdgeMargin
	nearBorder := func(p Point) bool {
		return p.X < m || p.Y < m || p.X > width-m || p.Y > height-m
	}
	return nearBorder(s.Start) || nearBorder(s.End)
}

// ScoreWalls scores the filtered segments, drops everything scoring at or
// below MinScore, and truncates to the adaptive cap, strongest first.
//
// The output ordering (structural score descending) is the final wall
// ordering of the pipeline.
func ScoreWalls(segments []Segment, width, height int, cfg ScoreConfig) []Wall {
	walls := make([]Wall, 0, len(segments))
	for _, s := range segments {
		perimeter := IsPerimeter(s, width, height, cfg)
		score := StructuralScore(s, perimeter, cfg)
		if score <= cfg.MinScore {
			continue
		}
		walls = append(walls, Wall{Segment: s, StructuralScore: score, Perimeter: perimeter})
	}

	sort.SliceStable(walls, func(i, j int) bool {
		return walls[i].StructuralScore > walls[j].StructuralScore
	})

	if limit := AdaptiveWallCap(walls, cfg); len(walls) > limit {
		walls = walls[:limit]
	}
	return walls
}

// AdaptiveWallCap derives a realistic wall-count ceiling from the score
// distribution and drawing scale. Large-scale plans carry a higher base;
// the count of high-importance walls (plus half the medium ones) pulls the
// cap down toward what the plan actually supports, bounded below by
// MinWalls.
func AdaptiveWallCap(walls []Wall, cfg ScoreConfig) int {
	if len(walls) == 0 {
		return 0
	}

	total := 0.0
	for _, w := range walls {
		total += w.Length
	}
	avgLength := total / float64(len(walls))

	base := cfg.MinWalls
	for _, band := range cfg.CapBands {
		if avgLength > band.MinAvgLength {
			base = band.BaseCount
			break
		}
	}

	high, medium := 0, 0
	for _, w := range walls {
		switch {
		case w.StructuralScore > cfg.HighScore:
			high++
		case w.StructuralScore > cfg.MediumScore:
			medium++
		}
	}

	capCount := high + medium/2
	if capCount > base {
		capCount = base
	}
	if capCount < cfg.MinWalls {
		capCount = cfg.MinWalls
	}
	return capCount
}
