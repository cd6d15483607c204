package detect

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// otsuLevel computes the Otsu threshold of a raster's intensity histogram:
// the level maximizing between-class variance of the ink/paper split. Plans
// are strongly bimodal, so Otsu separates line work from background without
// tuning.
func otsuLevel(r *imaging.Raster) uint8 {
	var hist [256]int
	for _, p := range r.Pix {
		hist[p]++
	}

	total := len(r.Pix)
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumBack, weightBack float64
	bestLevel := uint8(128)
	bestVariance := -1.0

	for i := 0; i < 256; i++ {
		weightBack += float64(hist[i])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(i) * float64(hist[i])

		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		diff := meanBack - meanFore
		variance := weightBack * weightFore * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			bestLevel = uint8(i)
		}
	}
	return bestLevel
}

// darkMask binarizes the raster at its Otsu level and returns a row-major
// mask of the ink (dark) pixels. Symbol detection runs connected-component
// analysis over this mask.
func darkMask(r *imaging.Raster) []bool {
	level := otsuLevel(r)

	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	binary := segment.Threshold(img, level)

	mask := make([]bool, r.Width*r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			// Threshold marks pixels above the level white; ink is
			// everything it left black.
			if binary.GrayAt(x, y).Y == 0 {
				mask[y*r.Width+x] = true
			}
		}
	}
	return mask
}
