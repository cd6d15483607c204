package floorplan

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// createPlan creates a white plan image.
func createPlan(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// inkRect fills a rectangle with ink (inclusive bounds).
func inkRect(img *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			img.Pix[y*img.Stride+x] = 0
		}
	}
}

// drawRoom draws a rectangular room outline with the given wall thickness.
func drawRoom(img *image.Gray, x1, y1, x2, y2, thickness int) {
	inkRect(img, x1, y1, x2, y1+thickness-1)
	inkRect(img, x1, y2-thickness+1, x2, y2)
	inkRect(img, x1, y1, x1+thickness-1, y2)
	inkRect(img, x2-thickness+1, y1, x2, y2)
}

func TestAnalyze_NilImage(t *testing.T) {
	res := Analyze(nil, DefaultConfig())

	if res.Success {
		t.Error("Expected failure for nil image")
	}
	if res.Error == "" {
		t.Error("Expected an error message")
	}
	// Collections must be empty arrays, never nil
	if res.Walls == nil || res.Doors == nil || res.Windows == nil || res.Arches == nil {
		t.Error("Expected non-nil empty collections on failure")
	}
}

func TestAnalyze_ZeroSizedImage(t *testing.T) {
	res := Analyze(image.NewGray(image.Rect(0, 0, 0, 0)), DefaultConfig())

	if res.Success {
		t.Error("Expected failure for zero-sized image")
	}
}

func TestAnalyze_BlankImage(t *testing.T) {
	res := Analyze(createPlan(300, 300), DefaultConfig())

	// A blank plan is a valid analysis with nothing in it
	if !res.Success {
		t.Fatalf("Expected success for blank image, got error %q", res.Error)
	}
	if len(res.Walls) != 0 || len(res.Doors) != 0 || len(res.Windows) != 0 || len(res.Arches) != 0 {
		t.Errorf("Expected empty collections, got %d/%d/%d/%d",
			len(res.Walls), len(res.Doors), len(res.Windows), len(res.Arches))
	}
	if res.Image.Width != 300 || res.Image.Height != 300 {
		t.Errorf("Expected 300x300 image stats, got %dx%d", res.Image.Width, res.Image.Height)
	}
	if res.Image.Contrast != 0 {
		t.Errorf("Expected zero contrast for blank image, got %f", res.Image.Contrast)
	}
}

func TestAnalyze_SyntheticRoom(t *testing.T) {
	img := createPlan(600, 600)
	drawRoom(img, 80, 80, 520, 520, 7)

	res := Analyze(img, DefaultConfig())
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.Error)
	}
	if len(res.Walls) == 0 {
		t.Fatal("Expected walls detected from a drawn room outline")
	}

	for _, w := range res.Walls {
		if w.Orientation != geometry.Horizontal && w.Orientation != geometry.Vertical {
			t.Errorf("Expected axis-aligned walls only, got %q", w.Orientation)
		}
		if w.StructuralScore <= 0.3 {
			t.Errorf("Expected surviving walls above the score floor, got %f", w.StructuralScore)
		}
		if w.Length < 100 {
			t.Errorf("Expected wall-length segments only, got %f", w.Length)
		}
	}

	if res.Totals.Walls != len(res.Walls) || res.Totals.Doors != len(res.Doors) ||
		res.Totals.Windows != len(res.Windows) || res.Totals.Arches != len(res.Arches) {
		t.Error("Expected totals to match collection lengths")
	}
	if res.Image.Contrast <= 0 {
		t.Errorf("Expected positive contrast, got %f", res.Image.Contrast)
	}
}

func TestAnalyze_EmptyCollectionsEncodeAsArrays(t *testing.T) {
	// A plain room produces walls but no openings; the opening
	// collections must still marshal as [] rather than null
	img := createPlan(600, 600)
	drawRoom(img, 80, 80, 520, 520, 7)

	res := Analyze(img, DefaultConfig())
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.Error)
	}
	if res.Walls == nil || res.Doors == nil || res.Windows == nil || res.Arches == nil {
		t.Fatal("Expected non-nil collections on the success path")
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}
	for _, field := range []string{"doors", "windows", "arches"} {
		if bytes.Contains(data, []byte(`"`+field+`":null`)) {
			t.Errorf("Expected %q encoded as an array, got null", field)
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	img := createPlan(300, 300)
	drawRoom(img, 40, 40, 260, 260, 6)

	path := filepath.Join(t.TempDir(), "room.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create plan file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode plan: %v", err)
	}
	f.Close()

	cache := imaging.NewPlanCache()
	res, err := AnalyzeFile(cache, path, DefaultConfig())
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Expected success, got error %q", res.Error)
	}
}

func TestAnalyzeFile_Missing(t *testing.T) {
	cache := imaging.NewPlanCache()

	if _, err := AnalyzeFile(cache, "/nonexistent/plan.png", DefaultConfig()); err == nil {
		t.Error("Expected error for missing plan file")
	}
}

func TestConfigPresets(t *testing.T) {
	def := DefaultConfig()
	if len(def.EdgeThresholds) != 3 {
		t.Errorf("Expected 3 edge threshold pairs, got %d", len(def.EdgeThresholds))
	}

	sketch := SketchConfig()
	if sketch.Classifier.MinLength >= def.Classifier.MinLength {
		t.Error("Expected the sketch preset to accept shorter segments")
	}

	cad := CADConfig()
	if cad.Classifier.MinLength <= def.Classifier.MinLength {
		t.Error("Expected the CAD preset to demand longer segments")
	}
	if len(cad.EdgeThresholds) >= len(def.EdgeThresholds) {
		t.Error("Expected the CAD preset to skip the permissive edge pass")
	}
}
