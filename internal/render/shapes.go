package render

import (
	"math"

	"github.com/verte-zerg/mindsight/internal/catalog"
)

// stimulusScale is the share of the shorter screen side a stimulus occupies.
const stimulusScale = 0.8

type point struct {
	x float64
	y float64
}

// StimulusSize returns the edge length, in cell widths, of the square box
// a stimulus is drawn into on a canvas of the given size.
func StimulusSize(width, height int) float64 {
	side := math.Min(float64(width), float64(height)*CellAspect)
	return side * stimulusScale
}

// DrawShape rasterizes a shape centered on the canvas.
func DrawShape(c *Canvas, kind catalog.ShapeKind) {
	size := StimulusSize(c.Width(), c.Height())
	if size <= 0 {
		return
	}
	half := size / 2
	switch kind {
	case catalog.Square:
		c.Fill(func(x, y float64) bool {
			return math.Abs(x) <= half && math.Abs(y) <= half
		})
	case catalog.Rectangle:
		c.Fill(func(x, y float64) bool {
			return math.Abs(x) <= half && math.Abs(y) <= half/2
		})
	case catalog.Triangle:
		tri := []point{{0, -half}, {-half, half}, {half, half}}
		c.Fill(func(x, y float64) bool {
			return insidePolygon(tri, x, y)
		})
	case catalog.Circle:
		c.Fill(func(x, y float64) bool {
			return x*x+y*y <= half*half
		})
	case catalog.Star:
		star := starPolygon(half, half/2, 5)
		c.Fill(func(x, y float64) bool {
			return insidePolygon(star, x, y)
		})
	}
}

// starPolygon returns the alternating outer/inner vertices of a star with
// its first point facing right.
func starPolygon(outer, inner float64, points int) []point {
	step := math.Pi / float64(points)
	angle := 0.0
	vertices := make([]point, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		vertices = append(vertices, point{x: r * math.Cos(angle), y: r * math.Sin(angle)})
		angle += step
	}
	return vertices
}

// insidePolygon uses the even-odd rule.
func insidePolygon(poly []point, x, y float64) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.y > y) != (pj.y > y) {
			crossX := (pj.x-pi.x)*(y-pi.y)/(pj.y-pi.y) + pi.x
			if x < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
