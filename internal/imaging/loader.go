package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

// MaxPlanDimension bounds the longer side of a loaded plan. Scans above this
// are downsampled before analysis; the geometric heuristics were tuned for
// plans in the 1000-4000px range and very large scans only slow the Hough
// stages down without finding more walls.
const MaxPlanDimension = 4000

// PlanCache provides thread-safe caching of loaded plan images so repeated
// analysis runs (different presets against the same scan) skip disk I/O.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Batch callers should clear between plans.
type PlanCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewPlanCache creates an empty cache ready for concurrent use.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a plan from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG and GIF. Images whose longer side exceeds
// MaxPlanDimension are downscaled to fit, preserving aspect ratio. The cache
// key is the exact path string; relative and absolute paths to the same file
// cache separately.
func (c *PlanCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxPlanDimension || bounds.Dy() > MaxPlanDimension {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, MaxPlanDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, MaxPlanDimension, imaging.Lanczos)
		}
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all cached plans.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes one cached plan by its load path.
func (c *PlanCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// PlanInfo contains metadata about a loaded plan file.
type PlanInfo struct {
	// Width is the analyzed width in pixels (after any downscale).
	Width int `json:"width"`

	// Height is the analyzed height in pixels (after any downscale).
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or
	// "unknown". Detection is by file extension.
	Format string `json:"format"`

	// Grayscale reports whether the scan carries no meaningful chroma.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the on-disk size of the plan file.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadPlanInfo loads a plan through the cache and returns its metadata.
func LoadPlanInfo(cache *PlanCache, path string) (*PlanInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return &PlanInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Grayscale:     isGrayscale(img),
		FileSizeBytes: stat.Size(),
	}, nil
}
