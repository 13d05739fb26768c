package widgets

import "github.com/binnev/lissajous-patterns/internal/viz"

type Control int

const (
	None Control = iota
	Plot
	FieldControl
	PredictBox
	RatioBox
	ClearButton
	SaveButton
	CloseButton
)

const (
	PanelWidth  = 300
	rowHeight   = 34
	buttonWidth = 84
	gap         = 12
)

// Layout places the plot on the left of the window and the panel on the
// right.
type Layout struct {
	Window  viz.Rect
	Plot    *viz.Viewport
	Panel   viz.Rect
	Fields  []viz.Rect
	Predict viz.Rect
	Ratio   viz.Rect
	Clear   viz.Rect
	Save    viz.Rect
	Close   viz.Rect
}

func NewLayout(w, h float64, xmin, xmax, ymin, ymax float64) *Layout {
	plotW := w - PanelWidth
	if plotW < 100 {
		plotW = 100
	}
	l := &Layout{
		Window: viz.Rect{W: w, H: h},
		Plot:   viz.NewViewport(viz.Rect{X: 40, Y: 30, W: plotW - 70, H: h - 70}, xmin, xmax, ymin, ymax),
		Panel:  viz.Rect{X: plotW, Y: 0, W: PanelWidth, H: h},
	}

	x, y := l.Panel.X+gap, 60.0
	for range Fields {
		l.Fields = append(l.Fields, viz.Rect{X: x, Y: y, W: PanelWidth - 2*gap, H: rowHeight - 6})
		y += rowHeight
	}
	y += gap
	l.Predict = viz.Rect{X: x, Y: y, W: PanelWidth - 2*gap, H: 24}
	y += 30
	l.Ratio = viz.Rect{X: x, Y: y, W: PanelWidth - 2*gap, H: 24}
	y += 30 + gap
	l.Clear = viz.Rect{X: x, Y: y, W: buttonWidth, H: 28}
	l.Save = viz.Rect{X: x + buttonWidth + gap, Y: y, W: buttonWidth, H: 28}
	l.Close = viz.Rect{X: x + 2*(buttonWidth+gap), Y: y, W: buttonWidth, H: 28}
	return l
}

// Hit names the control under (x, y). For FieldControl the index of the
// field is returned too.
func (l *Layout) Hit(x, y float64) (Control, int) {
	for i, r := range l.Fields {
		if r.Contains(x, y) {
			return FieldControl, i
		}
	}
	switch {
	case l.Predict.Contains(x, y):
		return PredictBox, 0
	case l.Ratio.Contains(x, y):
		return RatioBox, 0
	case l.Clear.Contains(x, y):
		return ClearButton, 0
	case l.Save.Contains(x, y):
		return SaveButton, 0
	case l.Close.Contains(x, y):
		return CloseButton, 0
	case l.Plot.Plot().Contains(x, y):
		return Plot, 0
	}
	return None, 0
}
