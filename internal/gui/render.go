package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
	"github.com/binnev/lissajous-patterns/internal/widgets"
)

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func vec(vp *viz.Viewport, p physics.Point) rl.Vector2 {
	x, y := vp.ToScreen(p.X, p.Y)
	return rl.NewVector2(float32(x), float32(y))
}

func rect(r viz.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawAxes()
	a.drawFigure()
	a.drawPanel()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y float64, size float32, color rl.Color) {
	// The default font has no glyph for the root sign.
	text = strings.ReplaceAll(text, "√", "sqrt")
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}

// drawAxes draws spines through the origin with ticks at the box edges.
func (a *App) drawAxes() {
	vp := a.Layout.Plot
	fig := a.S.Figure()

	rl.DrawLineEx(vec(vp, physics.Point{X: fig.XMin}), vec(vp, physics.Point{X: fig.XMax}), 1, ColAxes)
	rl.DrawLineEx(vec(vp, physics.Point{Y: fig.YMin}), vec(vp, physics.Point{Y: fig.YMax}), 1, ColAxes)

	for _, v := range []float64{fig.XMin, fig.XMin / 2, fig.XMax / 2, fig.XMax} {
		p := vec(vp, physics.Point{X: v})
		rl.DrawLineEx(p, rl.NewVector2(p.X, p.Y+6), 1, ColAxes)
		a.drawText(fmt.Sprintf("%.1f", v), float64(p.X)-10, float64(p.Y)+8, 12, ColTextDim)
	}
	for _, v := range []float64{fig.YMin, fig.YMin / 2, fig.YMax / 2, fig.YMax} {
		p := vec(vp, physics.Point{Y: v})
		rl.DrawLineEx(p, rl.NewVector2(p.X-6, p.Y), 1, ColAxes)
		a.drawText(fmt.Sprintf("%.1f", v), float64(p.X)-34, float64(p.Y)-6, 12, ColTextDim)
	}
}

func (a *App) drawFigure() {
	vp := a.Layout.Plot
	scale := float32(vp.Scale())

	for _, art := range a.S.Figure().Artists {
		switch art := art.(type) {
		case *session.Marker:
			rl.DrawCircleV(vec(vp, art.At), 3, toColor(art.Color))
		case *session.Arrow:
			pts := art.Outline()
			if len(pts) != 7 {
				continue
			}
			col := toColor(art.Color)
			from := vec(vp, art.From)
			neck := vec(vp, physics.Point{X: (pts[1].X + pts[5].X) / 2, Y: (pts[1].Y + pts[5].Y) / 2})
			rl.DrawLineEx(from, neck, float32(art.Width)*scale, col)
			// Screen y is flipped, so draw both windings.
			h1, tip, h2 := vec(vp, pts[2]), vec(vp, pts[3]), vec(vp, pts[4])
			rl.DrawTriangle(h1, tip, h2, col)
			rl.DrawTriangle(h2, tip, h1, col)
		case *session.Segments:
			for i := 0; i+1 < len(art.Points) && i < len(art.Colors); i++ {
				rl.DrawLineEx(vec(vp, art.Points[i]), vec(vp, art.Points[i+1]), 1.5, toColor(art.Colors[i]))
			}
		case *session.Scatter:
			pts, colors := art.Shown()
			for i, p := range pts {
				rl.DrawCircleV(vec(vp, p), 2.5, toColor(colors[i]))
			}
		case *session.Label:
			p := vec(vp, art.At)
			a.drawText(art.Text, float64(p.X)+4, float64(p.Y)+4, float32(art.Size), toColor(art.Color))
		}
	}
}

func (a *App) drawPanel() {
	l := a.Layout
	rl.DrawRectangleRec(rect(l.Panel), ColPanel)
	a.drawText("parameters", l.Panel.X+12, 24, 20, ColText)

	f := a.Form
	for i, field := range widgets.Fields {
		r := l.Fields[i]
		col := ColText
		if i == f.Cursor() {
			col = ColSelect
			rl.DrawRectangleLinesEx(rect(r), 1, ColSelect)
		}
		val := f.Text(i)
		if f.Editing() && i == f.Cursor() {
			val += "_"
		}
		a.drawText(field.Name, r.X+6, r.Y+8, 14, col)
		a.drawText(val, r.X+r.W-80, r.Y+8, 14, col)
	}

	a.drawCheckbox(l.Predict, "predict path", a.S.PredictPath())
	a.drawCheckbox(l.Ratio, "show ratio", a.S.ShowRatio())

	a.drawButton(l.Clear, "Clear")
	a.drawButton(l.Save, "Save")
	a.drawButton(l.Close, "Close")

	y := l.Clear.Y + l.Clear.H + 24
	if th := a.S.Last(); th != nil {
		c := th.Path.Coefficients
		tx, ty := c.Periods()
		a.drawText(fmt.Sprintf("periods  %.3f s  %.3f s", tx, ty), l.Panel.X+12, y, 14, ColText)
		y += 20
		a.drawText(fmt.Sprintf("amplitude %.3f  %.3f rad", c.AmpX, c.AmpY), l.Panel.X+12, y, 14, ColText)
		y += 20
		for _, w := range th.Warnings {
			a.drawText(fmt.Sprintf("%s beyond %.3f rad", w.Axis, w.Limit), l.Panel.X+12, y, 14, ColSelect)
			y += 20
		}
	}

	msg, col := a.status, ColTextDim
	if a.err != nil {
		msg, col = a.err.Error(), ColSelect
	}
	a.drawText(msg, 12, l.Window.H-20, 14, col)
	a.drawText("drag on the plot to throw", l.Panel.X+12, l.Window.H-48, 12, ColTextDim)
	a.drawText("arrows adjust  enter type  q quit", l.Panel.X+12, l.Window.H-30, 12, ColTextDim)
}

func (a *App) drawCheckbox(r viz.Rect, label string, on bool) {
	box := viz.Rect{X: r.X, Y: r.Y + 2, W: 18, H: 18}
	rl.DrawRectangleLinesEx(rect(box), 1, ColText)
	if on {
		rl.DrawRectangleRec(rect(viz.Rect{X: box.X + 4, Y: box.Y + 4, W: 10, H: 10}), ColText)
	}
	a.drawText(label, r.X+28, r.Y+4, 16, ColText)
}

func (a *App) drawButton(r viz.Rect, label string) {
	rl.DrawRectangleRec(rect(r), ColButton)
	rl.DrawRectangleLinesEx(rect(r), 1, ColTextDim)
	a.drawText(label, r.X+14, r.Y+7, 16, ColText)
}
