package imaging

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small white PNG to the test temp dir.
func writeTestPNG(t *testing.T, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, createPlanImage(width, height, nil)); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return path
}

func TestPlanCache_Load(t *testing.T) {
	path := writeTestPNG(t, "plan.png", 120, 80)
	cache := NewPlanCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("Expected 120x80, got %v", img.Bounds())
	}

	// Second load must come from the cache: same image value back
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Cached load failed: %v", err)
	}
	if again != img {
		t.Error("Expected cached image on second load")
	}
}

func TestPlanCache_LoadMissing(t *testing.T) {
	cache := NewPlanCache()

	if _, err := cache.Load("/nonexistent/plan.png"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPlanCache_Evict(t *testing.T) {
	path := writeTestPNG(t, "plan.png", 30, 30)
	cache := NewPlanCache()

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if first == second {
		t.Error("Expected a fresh decode after eviction")
	}
}

func TestLoadPlanInfo(t *testing.T) {
	path := writeTestPNG(t, "plan.png", 64, 48)
	cache := NewPlanCache()

	info, err := LoadPlanInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadPlanInfo failed: %v", err)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("Expected 64x48, got %dx%d", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Expected png format, got %q", info.Format)
	}
	if !info.Grayscale {
		t.Error("Expected a white plan to be grayscale")
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("Expected positive file size, got %d", info.FileSizeBytes)
	}
}
