// Package imaging provides raster primitives for floor-plan analysis.
//
// The package owns everything that touches pixels directly: loading and
// caching plan scans, flattening them to a grayscale intensity Raster, and
// producing binary EdgeMaps via multi-threshold Canny detection. The
// geometric stages downstream never read image.Image values; they consume
// the Raster and EdgeMap types defined here.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. Out-of-range raster reads
// return 255 (blank paper) and out-of-range edge reads return false, so
// sampling code near the image border needs no explicit clipping.
//
// # Thread Safety
//
// PlanCache is safe for concurrent use. Raster and EdgeMap are written only
// by their producing function and are safe to share read-only between
// goroutines afterwards.
package imaging
