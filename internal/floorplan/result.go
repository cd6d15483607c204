package floorplan

import (
	"github.com/ironsheep/floorplan-tools/internal/detect"
	"github.com/ironsheep/floorplan-tools/internal/geometry"
)

// ImageStats describes the analyzed raster.
type ImageStats struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Contrast float64 `json:"contrast"`
}

// Totals summarizes the counts of each detected feature class.
type Totals struct {
	Walls   int `json:"walls"`
	Doors   int `json:"doors"`
	Windows int `json:"windows"`
	Arches  int `json:"arches"`
}

// Result is the full analysis output. Collections are always non-nil so
// the JSON encoding carries empty arrays rather than null.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Walls   []geometry.Wall  `json:"walls"`
	Doors   []detect.Opening `json:"doors"`
	Windows []detect.Opening `json:"windows"`
	Arches  []detect.Opening `json:"arches"`

	Image  ImageStats `json:"image"`
	Totals Totals     `json:"totals"`
}

func emptyResult() *Result {
	return &Result{
		Walls:   []geometry.Wall{},
		Doors:   []detect.Opening{},
		Windows: []detect.Opening{},
		Arches:  []detect.Opening{},
	}
}

func failure(msg string) *Result {
	res := emptyResult()
	res.Error = msg
	return res
}
