package analysis

import (
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

// PhasePortrait is a 2D projection of a run, two state components per
// point.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []physics.Point
}

// NewPhasePortrait projects recorded states onto components xIdx and yIdx.
// With the pendulum layout [x, y, vx, vy], (0, 2) is the x phase plane and
// (0, 1) the figure traced on the table.
func NewPhasePortrait(states []dynamo.State, xIdx, yIdx int) *PhasePortrait {
	p := &PhasePortrait{XIndex: xIdx, YIndex: yIdx, Points: make([]physics.Point, 0, len(states))}
	for _, s := range states {
		if xIdx >= len(s) || yIdx >= len(s) {
			return nil
		}
		p.Points = append(p.Points, physics.Point{X: s[xIdx], Y: s[yIdx]})
	}
	return p
}

// PoincareSection records (recordX, recordY) each time component crossIdx
// crosses threshold upwards, interpolated to the crossing.
func PoincareSection(states []dynamo.State, crossIdx int, threshold float64, recordX, recordY int) []physics.Point {
	var out []physics.Point
	for i := 1; i < len(states); i++ {
		a, b := states[i-1], states[i]
		if crossIdx >= len(a) || recordX >= len(a) || recordY >= len(a) {
			return nil
		}
		if !(a[crossIdx] < threshold && b[crossIdx] >= threshold) {
			continue
		}
		frac := (threshold - a[crossIdx]) / (b[crossIdx] - a[crossIdx])
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		out = append(out, physics.Point{
			X: a[recordX] + frac*(b[recordX]-a[recordX]),
			Y: a[recordY] + frac*(b[recordY]-a[recordY]),
		})
	}
	return out
}

// Braille plots points on a width×height braille canvas, scaled to their
// bounds with a 10% margin.
func Braille(points []physics.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rx, ry := maxX-minX, maxY-minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}

	c := viz.NewCanvas(width, height)
	vp := viz.NewViewport(viz.Rect{W: float64(width*2 - 1), H: float64(height*4 - 1)},
		minX-rx*0.1, maxX+rx*0.1, minY-ry*0.1, maxY+ry*0.1)
	for i, p := range points {
		x, y := vp.Cell(p.X, p.Y)
		if i == 0 {
			c.Set(x, y)
			continue
		}
		px, py := vp.Cell(points[i-1].X, points[i-1].Y)
		c.DrawLine(px, py, x, y)
	}
	return c.String()
}
