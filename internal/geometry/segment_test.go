package geometry

import (
	"math"
	"testing"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

func TestNewSegment(t *testing.T) {
	s := NewSegment(0, 0, 300, 0)

	if s.Length != 300 {
		t.Errorf("Expected length 300, got %f", s.Length)
	}
	if s.Angle != 0 {
		t.Errorf("Expected angle 0, got %f", s.Angle)
	}
	if s.Source != SourceRaw {
		t.Errorf("Expected raw source, got %q", s.Source)
	}

	v := NewSegment(10, 10, 10, 210)
	if v.Length != 200 {
		t.Errorf("Expected length 200, got %f", v.Length)
	}
	if v.Angle != 90 {
		t.Errorf("Expected angle 90, got %f", v.Angle)
	}
}

func TestClassifyAngle_Bands(t *testing.T) {
	cfg := DefaultClassifierConfig()

	cases := []struct {
		angle  float64
		orient Orientation
		ok     bool
	}{
		{0, Horizontal, true},
		{10, Horizontal, true},
		{-12, Horizontal, true},
		{170, Horizontal, true},
		{-178, Horizontal, true},
		{90, Vertical, true},
		{80, Vertical, true},
		{-95, Vertical, true},
		{45, Diagonal, true},
		{47, Diagonal, true},
		{-40, Diagonal, true},
		{135, Diagonal, true},
		{-130, Diagonal, true},
		{25, "", false},
		{60, "", false},
		{-115, "", false},
		{160, "", false},
	}
	for _, c := range cases {
		orient, _, ok := ClassifyAngle(c.angle, cfg)
		if ok != c.ok || orient != c.orient {
			t.Errorf("ClassifyAngle(%f) = %q, %v, want %q, %v", c.angle, orient, ok, c.orient, c.ok)
		}
	}
}

func TestClassifyAngle_Exclusive(t *testing.T) {
	// Every angle matches at most one band; sweep the full circle
	cfg := DefaultClassifierConfig()
	for a := -180.0; a <= 180.0; a += 0.5 {
		orient, conf, ok := ClassifyAngle(a, cfg)
		if !ok {
			continue
		}
		if orient != Horizontal && orient != Vertical && orient != Diagonal {
			t.Fatalf("ClassifyAngle(%f) returned unknown orientation %q", a, orient)
		}
		if conf < 0.4 || conf > 1.0 {
			t.Errorf("ClassifyAngle(%f) confidence %f outside [0.4, 1.0]", a, conf)
		}
	}
}

func TestClassifyAngle_Confidence(t *testing.T) {
	cfg := DefaultClassifierConfig()

	// Perfect alignment scores 1.0
	if _, conf, _ := ClassifyAngle(0, cfg); conf != 1.0 {
		t.Errorf("Expected confidence 1.0 at 0 degrees, got %f", conf)
	}
	if _, conf, _ := ClassifyAngle(90, cfg); conf != 1.0 {
		t.Errorf("Expected confidence 1.0 at 90 degrees, got %f", conf)
	}

	// Confidence falls with deviation but never below the band floor
	_, at5, _ := ClassifyAngle(5, cfg)
	_, at12, _ := ClassifyAngle(12, cfg)
	if at12 >= at5 {
		t.Errorf("Expected confidence to fall with deviation: %f at 5deg, %f at 12deg", at5, at12)
	}
	if at12 < 0.5 {
		t.Errorf("Axis confidence %f below floor 0.5", at12)
	}
	if _, conf, _ := ClassifyAngle(53, cfg); conf < 0.4 {
		t.Errorf("Diagonal confidence %f below floor 0.4", conf)
	}
}

func TestClassifySegments_MinLength(t *testing.T) {
	r := imaging.NewRaster(400, 400)
	cfg := DefaultClassifierConfig()

	// A 60px segment at a diagonal angle is too short regardless of band
	raw := []Segment{
		NewSegment(0, 0, 41, 44), // ~60px at ~47 degrees
		NewSegment(0, 0, 300, 0),
	}
	out := ClassifySegments(raw, r, cfg)
	if len(out) != 1 {
		t.Fatalf("Expected 1 surviving segment, got %d", len(out))
	}
	if out[0].Orientation != Horizontal {
		t.Errorf("Expected the long horizontal to survive, got %q", out[0].Orientation)
	}
}

func TestClassifySegments_OffBandDiscarded(t *testing.T) {
	r := imaging.NewRaster(400, 400)
	cfg := DefaultClassifierConfig()

	// 25 degrees matches no band even at wall length
	raw := []Segment{NewSegment(0, 0, 181, 84)}
	if out := ClassifySegments(raw, r, cfg); len(out) != 0 {
		t.Errorf("Expected off-band segment discarded, got %d segments", len(out))
	}
}

func TestClassifySegments_Sketchy(t *testing.T) {
	r := imaging.NewRaster(400, 400)
	cfg := DefaultClassifierConfig()

	// 12 degrees off axis: confidence 0.5, marked sketchy
	raw := []Segment{NewSegment(0, 0, 294, 62)}
	out := ClassifySegments(raw, r, cfg)
	if len(out) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(out))
	}
	if !out[0].Sketchy {
		t.Error("Expected low-confidence segment marked sketchy")
	}

	raw = []Segment{NewSegment(0, 0, 300, 0)}
	out = ClassifySegments(raw, r, cfg)
	if out[0].Sketchy {
		t.Error("Expected perfectly aligned segment not sketchy")
	}
}

func TestEstimateThickness(t *testing.T) {
	// 10px-thick horizontal stroke centered on y=50
	r := imaging.NewRaster(200, 100)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	for y := 45; y <= 55; y++ {
		for x := 0; x < 200; x++ {
			r.Pix[y*r.Width+x] = 0
		}
	}

	s := NewSegment(10, 50, 190, 50)
	thickness := EstimateThickness(r, s)

	// The perpendicular walk exits the stroke around offset 6, reporting 12
	if thickness < MinWallThickness || thickness > MaxWallThickness {
		t.Fatalf("Thickness %f outside clamp [%f, %f]", thickness, MinWallThickness, MaxWallThickness)
	}
	if math.Abs(thickness-12) > 4 {
		t.Errorf("Expected thickness near 12 for an 11px stroke, got %f", thickness)
	}
}

func TestEstimateThickness_Clamp(t *testing.T) {
	// All-black raster: the walk never exits, so the default applies
	r := imaging.NewRaster(100, 100)
	s := NewSegment(10, 50, 90, 50)
	if got := EstimateThickness(r, s); got != 6.0 {
		t.Errorf("Expected default thickness 6 inside a filled region, got %f", got)
	}

	// Zero-length segment falls back too
	if got := EstimateThickness(r, NewSegment(5, 5, 5, 5)); got != 6.0 {
		t.Errorf("Expected default thickness 6 for degenerate segment, got %f", got)
	}
}

func TestPointToLineDistance(t *testing.T) {
	s := NewSegment(0, 0, 100, 0)

	if d := PointToLineDistance(50, 10, s); math.Abs(d-10) > 1e-9 {
		t.Errorf("Expected distance 10, got %f", d)
	}
	if d := PointToLineDistance(50, 0, s); d != 0 {
		t.Errorf("Expected distance 0 on the line, got %f", d)
	}

	degenerate := NewSegment(5, 5, 5, 5)
	if d := PointToLineDistance(0, 0, degenerate); !math.IsInf(d, 1) {
		t.Errorf("Expected +Inf for degenerate segment, got %f", d)
	}
}

func TestNearWall(t *testing.T) {
	walls := []Wall{{Segment: NewSegment(0, 100, 500, 100)}}

	if !NearWall(Point{X: 250, Y: 110}, walls, 15) {
		t.Error("Expected point 10px from wall to be near at tolerance 15")
	}
	if NearWall(Point{X: 250, Y: 130}, walls, 15) {
		t.Error("Expected point 30px from wall to be far at tolerance 15")
	}

	// Non-positive tolerance selects the default
	if !NearWall(Point{X: 250, Y: 110}, walls, 0) {
		t.Error("Expected default tolerance to apply for tolerance 0")
	}
	if NearWall(Point{X: 250, Y: 130}, walls, 0) {
		t.Error("Expected point beyond default tolerance to be far")
	}
}

func TestMidpointDistance(t *testing.T) {
	a := NewSegment(0, 0, 100, 0)
	b := NewSegment(0, 30, 100, 30)

	if d := MidpointDistance(a, b); math.Abs(d-30) > 1e-9 {
		t.Errorf("Expected midpoint distance 30, got %f", d)
	}
}
