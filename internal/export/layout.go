package export

import (
	"strconv"

	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

// Sizes relative to the page edge.
const (
	margin        = 0.08
	markerRadius  = 0.006
	scatterRadius = 0.005
	tickLength    = 0.012
)

func figureViewport(fig *session.Figure, size int) *viz.Viewport {
	s := float64(size)
	m := s * margin
	return viz.NewViewport(viz.Rect{X: m, Y: m, W: s - 2*m, H: s - 2*m}, fig.XMin, fig.XMax, fig.YMin, fig.YMax)
}

// ticks returns tick marks at the axis limits as screen segments
// {x0, y0, x1, y1}. Ticks point outward from the spines through the origin.
func ticks(fig *session.Figure, vp *viz.Viewport) [][4]float64 {
	l := vp.Plot().W * tickLength
	var out [][4]float64
	for _, x := range []float64{fig.XMin, fig.XMax} {
		sx, sy := vp.ToScreen(x, 0)
		out = append(out, [4]float64{sx, sy, sx, sy + l})
	}
	for _, y := range []float64{fig.YMin, fig.YMax} {
		sx, sy := vp.ToScreen(0, y)
		out = append(out, [4]float64{sx - l, sy, sx, sy})
	}
	return out
}

type tickLabel struct {
	x, y float64
	text string
}

func tickLabels(fig *session.Figure, vp *viz.Viewport) []tickLabel {
	l := vp.Plot().W * tickLength
	var out []tickLabel
	for _, x := range []float64{fig.XMin, fig.XMax} {
		sx, sy := vp.ToScreen(x, 0)
		out = append(out, tickLabel{x: sx, y: sy + l + 14, text: format(x)})
	}
	for _, y := range []float64{fig.YMin, fig.YMax} {
		sx, sy := vp.ToScreen(0, y)
		out = append(out, tickLabel{x: sx - l - 12, y: sy + 4, text: format(y)})
	}
	return out
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
