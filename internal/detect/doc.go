// Package detect finds doors, windows and arches in analyzed floor plans.
//
// Opening detection runs after wall reconstruction and consumes the final
// wall set plus the raw intensity raster; it never reaches back into the
// scoring internals. Each opening kind is the union of several independent
// heuristics (wall gaps, swing arcs, drawn symbols, intensity patterns),
// because real plans draw the same opening in different ways depending on
// the drafting style.
//
// # Failure model
//
// Detection is inherently heuristic and partial coverage is expected. Every
// heuristic recovers from internal panics on malformed geometry and simply
// contributes no candidates; a failed method never aborts the stage or the
// pipeline.
//
// # Deduplication
//
// The same physical opening is routinely found by more than one method.
// Candidates within a fixed pixel radius collapse to the single
// highest-confidence member, and doors/arches are additionally capped at
// realistic per-plan counts.
package detect
