package detect

import (
	"testing"

	"github.com/ironsheep/floorplan-tools/internal/geometry"
)

func TestWindows_DarkRectangle(t *testing.T) {
	// A wide dark rectangle sitting on a wall: a drawn window symbol
	r := whiteRaster(400, 400)
	fillRect(r, 180, 104, 219, 113) // 40x10, aspect 4.0
	walls := []geometry.Wall{horizontalWall(50, 100, 350)}

	windows := Windows(r, walls, DefaultConfig())
	if len(windows) != 1 {
		t.Fatalf("Expected 1 window, got %d", len(windows))
	}

	w := windows[0]
	if w.Method != "dark_rectangle" {
		t.Errorf("Expected method \"dark_rectangle\", got %q", w.Method)
	}
	if w.Width != 40 || w.Height != 10 {
		t.Errorf("Expected 40x10 window extent, got %fx%f", w.Width, w.Height)
	}
	if w.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %f", w.Confidence)
	}
}

func TestWindows_RectangleFarFromWall(t *testing.T) {
	r := whiteRaster(400, 400)
	fillRect(r, 180, 300, 219, 309)
	walls := []geometry.Wall{horizontalWall(50, 100, 350)}

	if windows := Windows(r, walls, DefaultConfig()); len(windows) != 0 {
		t.Errorf("Expected no window far from every wall, got %d", len(windows))
	}
}

func TestWindows_AspectRejected(t *testing.T) {
	// A tall narrow block fails the width/height aspect band
	r := whiteRaster(400, 400)
	fillRect(r, 198, 102, 203, 140) // 6x39, aspect 0.15
	walls := []geometry.Wall{horizontalWall(50, 100, 350)}

	if windows := Windows(r, walls, DefaultConfig()); len(windows) != 0 {
		t.Errorf("Expected the tall block rejected on aspect, got %d windows", len(windows))
	}
}

func TestWindows_NoWalls(t *testing.T) {
	r := whiteRaster(400, 400)
	fillRect(r, 180, 104, 219, 113)

	if windows := Windows(r, nil, DefaultConfig()); len(windows) != 0 {
		t.Errorf("Expected no windows without walls, got %d", len(windows))
	}
}

func TestHasFramePattern(t *testing.T) {
	// Two dark frame lines around a bright opening on bright paper
	profile := make([]float64, 41)
	for i := range profile {
		profile[i] = 230
	}
	profile[8], profile[9], profile[10] = 120, 40, 120
	profile[19], profile[20], profile[21] = 240, 250, 240
	profile[29], profile[30], profile[31] = 120, 40, 120

	if !hasFramePattern(profile) {
		t.Error("Expected a two-valley profile to read as a frame pattern")
	}

	// A flat profile has no structure
	flat := make([]float64, 41)
	for i := range flat {
		flat[i] = 230
	}
	if hasFramePattern(flat) {
		t.Error("Expected a flat profile not to read as a frame pattern")
	}

	// Too short to judge
	if hasFramePattern(profile[:5]) {
		t.Error("Expected a 5-sample profile rejected outright")
	}
}

func TestCenterBrighter(t *testing.T) {
	// Dark faces, bright center
	profile := []float64{40, 40, 40, 120, 200, 120, 40, 40, 40}
	if !centerBrighter(profile, 20) {
		t.Error("Expected bright center over dark faces to qualify")
	}

	flat := []float64{200, 200, 200, 200, 200, 200, 200}
	if centerBrighter(flat, 20) {
		t.Error("Expected flat profile not to qualify")
	}

	if centerBrighter([]float64{1, 2, 3}, 20) {
		t.Error("Expected short profile rejected")
	}
}

func TestSmooth3(t *testing.T) {
	in := []float64{0, 90, 0}
	out := smooth3(in)

	if len(out) != 3 {
		t.Fatalf("Expected length preserved, got %d", len(out))
	}
	if out[0] != 45 || out[1] != 30 || out[2] != 45 {
		t.Errorf("Expected [45 30 45], got %v", out)
	}
}
