package ocr

import (
	"errors"
	"image"
)

// ErrUnavailable indicates Tesseract support was not compiled in.
var ErrUnavailable = errors.New("ocr: tesseract support not compiled in")

// Box is a recognized word with its bounding box in pixel coordinates.
type Box struct {
	Rect       image.Rectangle `json:"rect"`
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
}

// Rects projects the bounding rectangles out of a box list, the shape the
// noise filter consumes.
func Rects(boxes []Box) []image.Rectangle {
	if len(boxes) == 0 {
		return nil
	}
	rects := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		rects[i] = b.Rect
	}
	return rects
}
