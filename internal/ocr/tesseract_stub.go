//go:build !cgo || !linux

package ocr

import "image"

// Words would extract word bounding boxes from the image; this build has no
// Tesseract support and always returns ErrUnavailable.
func Words(img image.Image) ([]Box, error) {
	return nil, ErrUnavailable
}

// Available reports whether OCR support is compiled into this binary.
func Available() bool {
	return false
}
