package geometry

import (
	"image"
	"testing"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// wallSegment builds a confident horizontal segment for filter tests.
func wallSegment(x1, y, x2 int, confidence float64) Segment {
	s := NewSegment(x1, y, x2, y)
	s.Orientation = Horizontal
	s.Confidence = confidence
	return s
}

func TestFilterNoise_QualityFloor(t *testing.T) {
	edges := imaging.NewEdgeMap(800, 800)
	cfg := DefaultNoiseConfig()

	segments := []Segment{
		wallSegment(0, 100, 300, 0.9), // confident and long enough
		wallSegment(0, 200, 250, 0.5), // weak confidence, 250px still passes on length
		wallSegment(0, 300, 150, 0.5), // weak and short: dropped
	}
	out := FilterNoise(segments, edges, nil, cfg)
	if len(out) != 2 {
		t.Fatalf("Expected 2 survivors, got %d", len(out))
	}
	for _, s := range out {
		if s.Start.Y == 300 {
			t.Error("Expected the weak short segment to be dropped")
		}
	}
}

func TestFilterNoise_ClusterThinning(t *testing.T) {
	edges := imaging.NewEdgeMap(800, 800)
	cfg := DefaultNoiseConfig()

	// Six tightly packed parallel strokes, as text rendering produces.
	// Only the two longest survive the cluster pass
	segments := []Segment{
		wallSegment(0, 100, 260, 0.9),
		wallSegment(0, 104, 300, 0.9),
		wallSegment(0, 108, 250, 0.9),
		wallSegment(0, 112, 280, 0.9),
		wallSegment(0, 116, 240, 0.9),
		wallSegment(0, 120, 230, 0.9),
	}
	out := FilterNoise(segments, edges, nil, cfg)
	if len(out) != 2 {
		t.Fatalf("Expected cluster thinned to 2 segments, got %d", len(out))
	}
	if out[0].Length != 300 || out[1].Length != 280 {
		t.Errorf("Expected the two longest kept, got lengths %f and %f", out[0].Length, out[1].Length)
	}
}

func TestFilterNoise_SmallClusterKeptWhole(t *testing.T) {
	edges := imaging.NewEdgeMap(800, 800)
	cfg := DefaultNoiseConfig()

	// Four close parallel strokes are within the cluster allowance
	segments := []Segment{
		wallSegment(0, 100, 300, 0.9),
		wallSegment(0, 108, 300, 0.9),
		wallSegment(0, 116, 300, 0.9),
		wallSegment(0, 124, 300, 0.9),
	}
	out := FilterNoise(segments, edges, nil, cfg)
	if len(out) != 4 {
		t.Errorf("Expected all 4 segments kept, got %d", len(out))
	}
}

func TestFilterNoise_TextDenseRegion(t *testing.T) {
	cfg := DefaultNoiseConfig()

	// Saturate the neighborhood around (400, 100) with edge pixels
	edges := imaging.NewEdgeMap(800, 800)
	for y := 60; y < 140; y++ {
		for x := 360; x < 440; x++ {
			edges.Bits[y*edges.Width+x] = true
		}
	}

	segments := []Segment{
		wallSegment(250, 100, 550, 0.9), // midpoint inside the dense region
		wallSegment(250, 600, 550, 0.9), // clean neighborhood
	}
	out := FilterNoise(segments, edges, nil, cfg)
	if len(out) != 1 {
		t.Fatalf("Expected 1 survivor, got %d", len(out))
	}
	if out[0].Start.Y != 600 {
		t.Errorf("Expected the clean segment to survive, got y=%d", out[0].Start.Y)
	}
}

func TestFilterNoise_WordBoxes(t *testing.T) {
	edges := imaging.NewEdgeMap(800, 800)
	cfg := DefaultNoiseConfig()

	segments := []Segment{
		wallSegment(250, 100, 550, 0.9),
		wallSegment(250, 600, 550, 0.9),
	}
	boxes := []image.Rectangle{image.Rect(380, 80, 420, 120)}

	out := FilterNoise(segments, edges, boxes, cfg)
	if len(out) != 1 {
		t.Fatalf("Expected 1 survivor, got %d", len(out))
	}
	if out[0].Start.Y != 600 {
		t.Errorf("Expected segment outside word boxes to survive, got y=%d", out[0].Start.Y)
	}
}

func TestFilterNoise_Ordering(t *testing.T) {
	edges := imaging.NewEdgeMap(800, 800)
	cfg := DefaultNoiseConfig()

	weak := wallSegment(0, 100, 210, 0.82)
	strong := wallSegment(0, 600, 400, 0.95)

	out := FilterNoise([]Segment{weak, strong}, edges, nil, cfg)
	if len(out) != 2 {
		t.Fatalf("Expected 2 survivors, got %d", len(out))
	}
	if out[0].Confidence*out[0].Length < out[1].Confidence*out[1].Length {
		t.Error("Expected survivors ordered by confidence x length, strongest first")
	}
}
