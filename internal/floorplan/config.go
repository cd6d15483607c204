package floorplan

import (
	"github.com/ironsheep/floorplan-tools/internal/detect"
	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Config aggregates every tunable threshold in the pipeline. Each stage's
// parameters live in its own package; this struct only wires them together
// so a caller can swap a whole preset (sketch vs CAD) or override a single
// field for testing.
type Config struct {
	// EdgeThresholds are the Canny passes unioned into the edge map,
	// ordered permissive to strict: sketchy, standard and precise line
	// drawings each get one tuned pass.
	EdgeThresholds []imaging.ThresholdPair `json:"edge_thresholds"`

	Hough       geometry.HoughConfig       `json:"hough"`
	Classifier  geometry.ClassifierConfig  `json:"classifier"`
	Grouping    geometry.GroupConfig       `json:"grouping"`
	Consolidate geometry.ConsolidateConfig `json:"consolidate"`
	Noise       geometry.NoiseConfig       `json:"noise"`
	Score       geometry.ScoreConfig       `json:"score"`
	Openings    detect.Config              `json:"openings"`

	// UseOCR additionally masks walls inside Tesseract-recognized words.
	// Ignored (with the heuristic filter still active) when OCR support
	// is not compiled in.
	UseOCR bool `json:"use_ocr"`
}

// DefaultConfig returns the full default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		EdgeThresholds: []imaging.ThresholdPair{
			{Low: 30, High: 100},
			{Low: 50, High: 150},
			{Low: 80, High: 200},
		},
		Hough:       geometry.DefaultHoughConfig(),
		Classifier:  geometry.DefaultClassifierConfig(),
		Grouping:    geometry.DefaultGroupConfig(),
		Consolidate: geometry.DefaultConsolidateConfig(),
		Noise:       geometry.DefaultNoiseConfig(),
		Score:       geometry.DefaultScoreConfig(),
		Openings:    detect.DefaultConfig(),
	}
}

// SketchConfig returns a preset relaxed for freehand drawings: more
// permissive line acceptance, lower structural demands.
func SketchConfig() Config {
	cfg := DefaultConfig()
	cfg.Classifier.MinLength = 60
	cfg.Noise.MinConfidence = 0.7
	cfg.Noise.MinConfidentLength = 80
	cfg.Noise.MinLength = 150
	return cfg
}

// CADConfig returns a preset tightened for clean vector-derived plans.
func CADConfig() Config {
	cfg := DefaultConfig()
	cfg.EdgeThresholds = []imaging.ThresholdPair{
		{Low: 50, High: 150},
		{Low: 80, High: 200},
	}
	cfg.Classifier.MinLength = 120
	return cfg
}
