//go:build cgo && linux

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Words extracts word bounding boxes from the image using Tesseract.
//
// The image is encoded to PNG in memory for the Tesseract API. Word text
// and per-word confidence (normalized to 0-1) are returned alongside each
// box so callers can filter weak recognitions; the pipeline's noise filter
// uses the boxes as-is, since even a misread word still marks a text
// region.
func Words(img image.Image) ([]Box, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}

	bbs, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	boxes := make([]Box, 0, len(bbs))
	for _, bb := range bbs {
		boxes = append(boxes, Box{
			Rect:       bb.Box,
			Text:       bb.Word,
			Confidence: bb.Confidence / 100.0,
		})
	}
	return boxes, nil
}

// Available reports whether OCR support is compiled into this binary.
func Available() bool {
	return true
}
