// Package floorplan orchestrates the reconstruction pipeline: edge
// extraction, line detection, fuzzy classification, grouping and
// consolidation, noise filtering, structural scoring, and opening
// detection. The stage order is fixed; Config tunes each stage.
//
// Analyze never returns an error for content it cannot interpret. A plan
// with no recognizable structure yields a successful result with empty
// collections, so callers can treat every outcome uniformly.
package floorplan
