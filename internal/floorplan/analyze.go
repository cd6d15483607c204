package floorplan

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/floorplan-tools/internal/detect"
	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
	"github.com/ironsheep/floorplan-tools/internal/ocr"
)

// Analyze runs the full reconstruction pipeline on a decoded image and
// always returns a usable Result. Stage failures downgrade the result
// rather than aborting: a plan with no detectable walls is still a valid
// (empty) analysis.
func Analyze(img image.Image, cfg Config) *Result {
	if img == nil {
		return failure("no image supplied")
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return failure("image has no pixels")
	}

	r := imaging.FromImage(img)
	contrast := r.Contrast()

	res := emptyResult()
	res.Success = true
	res.Image = ImageStats{Width: r.Width, Height: r.Height, Contrast: contrast}

	edges := imaging.MultiScaleEdges(r, cfg.EdgeThresholds)
	if edges.Count() == 0 {
		return res
	}

	raw := geometry.DetectSegments(edges, contrast, cfg.Hough)
	segments := geometry.ClassifySegments(raw, r, cfg.Classifier)
	groups := geometry.GroupSegments(segments, cfg.Grouping)
	merged := geometry.Consolidate(groups, cfg.Consolidate)

	var textBoxes []image.Rectangle
	if cfg.UseOCR {
		boxes, err := ocr.Words(img)
		if err != nil {
			log.Printf("OCR unavailable, falling back to edge-density text filter: %v", err)
		} else {
			textBoxes = ocr.Rects(boxes)
		}
	}

	filtered := geometry.FilterNoise(merged, edges, textBoxes, cfg.Noise)
	res.Walls = geometry.ScoreWalls(filtered, r.Width, r.Height, cfg.Score)

	res.Doors = detect.Doors(r, edges, res.Walls, cfg.Openings)
	res.Windows = detect.Windows(r, res.Walls, cfg.Openings)
	res.Arches = detect.Arches(edges, res.Walls, cfg.Openings)

	res.Totals = Totals{
		Walls:   len(res.Walls),
		Doors:   len(res.Doors),
		Windows: len(res.Windows),
		Arches:  len(res.Arches),
	}
	return res
}

// AnalyzeFile loads a plan through the cache and analyzes it.
func AnalyzeFile(cache *imaging.PlanCache, path string, cfg Config) (*Result, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", path, err)
	}
	return Analyze(img, cfg), nil
}
