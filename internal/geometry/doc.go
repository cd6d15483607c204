// Package geometry reconstructs wall primitives from edge maps.
//
// The package implements the middle of the floor-plan pipeline as pure
// functions over immutable values: Hough segment extraction, fuzzy angle
// classification, transitive parallel-line grouping, per-group consolidation
// into walls with derived thickness, noise filtering, and structural
// importance scoring with an adaptive wall-count cap.
//
// # Pipeline
//
//	DetectSegments -> ClassifySegments -> GroupSegments -> Consolidate
//	              -> FilterNoise -> ScoreWalls
//
// Each stage consumes the previous stage's output and produces new values;
// no stage mutates its input, so stages are independently testable and the
// whole chain is deterministic for a given edge map and configuration.
//
// # Fuzzy classification
//
// Hand-drawn plans rarely contain exact 0/90/45 degree lines. Segments are
// assigned to an orientation band with a continuous confidence that falls
// off linearly toward the band edge, so a wall drawn at 3 degrees is still
// horizontal, just slightly less certain.
//
// # Complexity
//
// Grouping, noise clustering and consolidation compare segments pairwise and
// are O(n^2) in the segment count. HoughConfig.MaxSegments bounds n to the
// strongest peaks (hundreds), keeping the quadratic stages cheap.
package geometry
