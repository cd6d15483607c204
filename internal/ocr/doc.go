// Package ocr extracts word bounding boxes from plan images.
//
// The boxes feed the noise filter: line segments whose midpoint falls inside
// recognized text are annotation, not walls. OCR is strictly best-effort:
// recognized text content is never interpreted (no scale or unit
// inference), only its location matters.
//
// On Linux with CGO enabled, Words uses the gosseract Tesseract bindings.
// On other platforms, or without CGO, Words returns ErrUnavailable and the
// pipeline falls back to its edge-density text heuristic alone.
package ocr
