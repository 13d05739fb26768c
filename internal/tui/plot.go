package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

func hex(c lipgloss.Color) colorful.Color {
	out, err := colorful.Hex(string(c))
	if err != nil {
		return viz.White
	}
	return out
}

// drawFigure paints fig onto c. Black ink, invisible on most terminals, is
// drawn with the theme's marker colour instead.
func drawFigure(c *viz.Canvas, vp *viz.Viewport, fig *session.Figure, th viz.Theme) {
	c.Clear()
	marker := hex(th.Marker)
	ink := func(clr colorful.Color) colorful.Color {
		if clr == viz.Black {
			return marker
		}
		return clr
	}
	line := func(a, b physics.Point, clr colorful.Color) {
		x0, y0 := vp.Cell(a.X, a.Y)
		x1, y1 := vp.Cell(b.X, b.Y)
		c.DrawLineColor(x0, y0, x1, y1, clr)
	}

	axes := hex(th.Axes)
	line(physics.Point{X: fig.XMin}, physics.Point{X: fig.XMax}, axes)
	line(physics.Point{Y: fig.YMin}, physics.Point{Y: fig.YMax}, axes)

	for _, a := range fig.Artists {
		switch a := a.(type) {
		case *session.Marker:
			x, y := vp.Cell(a.At.X, a.At.Y)
			clr := ink(a.Color)
			c.SetColor(x, y, clr)
			c.SetColor(x+1, y, clr)
			c.SetColor(x, y+1, clr)
			c.SetColor(x+1, y+1, clr)
		case *session.Arrow:
			pts := a.Outline()
			for i := range pts {
				line(pts[i], pts[(i+1)%len(pts)], ink(a.Color))
			}
		case *session.Segments:
			for i := 0; i+1 < len(a.Points) && i < len(a.Colors); i++ {
				line(a.Points[i], a.Points[i+1], ink(a.Colors[i]))
			}
		case *session.Scatter:
			pts, colors := a.Shown()
			for i, p := range pts {
				x, y := vp.Cell(p.X, p.Y)
				c.SetColor(x, y, ink(colors[i]))
			}
		case *session.Label:
			sx, sy := vp.ToScreen(a.At.X, a.At.Y)
			c.Text(int(math.Ceil(sx/2)), int(sy/4), a.Text, ink(a.Color))
		}
	}
}
