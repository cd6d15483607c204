package detect

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-tools/internal/imaging"
)

// Circle is a candidate circle from the Hough circle transform.
type Circle struct {
	X          int
	Y          int
	Radius     int
	Confidence float64
}

// houghCircles finds circles in an edge map by accumulator voting.
//
// For each radius in [minRadius, maxRadius], every edge pixel votes for
// potential centers at 10-degree steps around itself; accumulator cells
// collecting at least 60% of the expected circumference votes and forming a
// local maximum become candidates. Duplicates with overlapping centers are
// merged, keeping the stronger. Confidence is the vote fraction, capped at 1.
//
// Complexity is O(width x height x radius range x 36); callers keep the
// radius band narrow (door swings are 20-80px).
func houghCircles(edges *imaging.EdgeMap, minRadius, maxRadius int) []Circle {
	width := edges.Width
	height := edges.Height
	if width == 0 || height == 0 || minRadius < 1 {
		return nil
	}

	var circles []Circle
	for radius := minRadius; radius <= maxRadius; radius++ {
		accumulator := make([]int, width*height)

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) {
					continue
				}
				for angle := 0; angle < 360; angle += 10 {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(float64(radius)*math.Cos(rad))
					cy := y - int(float64(radius)*math.Sin(rad))
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy*width+cx]++
					}
				}
			}
		}

		threshold := int(float64(2*radius) * 0.6)
		if threshold < 4 {
			threshold = 4
		}
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				votes := accumulator[y*width+x]
				if votes < threshold {
					continue
				}
				isMax := true
				for dy := -5; dy <= 5 && isMax; dy++ {
					for dx := -5; dx <= 5 && isMax; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						ny, nx := y+dy, x+dx
						if ny >= 0 && ny < height && nx >= 0 && nx < width &&
							accumulator[ny*width+nx] > votes {
							isMax = false
						}
					}
				}
				if isMax {
					circles = append(circles, Circle{
						X:          x,
						Y:          y,
						Radius:     radius,
						Confidence: math.Min(float64(votes)/float64(2*radius), 1.0),
					})
				}
			}
		}
	}

	sort.SliceStable(circles, func(i, j int) bool {
		return circles[i].Confidence > circles[j].Confidence
	})
	return mergeCircles(circles)
}

// mergeCircles drops circles whose center falls within the average radius of
// an already kept (stronger) circle.
func mergeCircles(circles []Circle) []Circle {
	var kept []Circle
	for _, c := range circles {
		duplicate := false
		for _, k := range kept {
			dx := float64(c.X - k.X)
			dy := float64(c.Y - k.Y)
			if math.Hypot(dx, dy) < float64(c.Radius+k.Radius)/2 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}
