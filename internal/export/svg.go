package export

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per dot in the
// colour of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background, ink colorful.Color) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background.Hex())

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := ink
			if c := canvas.Colors[row][col]; c != (colorful.Color{}) {
				fill = c
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.Dot(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col)*scale*2 + float64(dx)*scale + scale/2
					cy := float64(row)*scale*4 + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill.Hex())
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PathToSVG draws a bare trajectory, fitted to the image with a 10% margin
// and shaded along its length with inferno_r.
func PathToSVG(points []physics.Point, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	vp := viz.NewViewport(viz.Rect{W: float64(width), H: float64(height)}, minX, maxX, minY, maxY)
	colors := viz.InfernoR(len(points), 0.1, 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g fill="none" stroke-width="1.5" stroke-linecap="round">
`, width, height, width, height)
	for i := 1; i < len(points); i++ {
		x0, y0 := vp.ToScreen(points[i-1].X, points[i-1].Y)
		x1, y1 := vp.ToScreen(points[i].X, points[i].Y)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x0, y0, x1, y1, colors[i-1].Hex())
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FigureToSVG draws the figure on a size×size white page: spines through
// the origin, ticks at the axis limits, then every artist in order.
func FigureToSVG(fig *session.Figure, size int) string {
	vp := figureViewport(fig, size)
	s := float64(size)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, size, size, size, size)

	writeAxes(&sb, fig, vp)

	for _, a := range fig.Artists {
		switch a := a.(type) {
		case *session.Marker:
			x, y := vp.ToScreen(a.At.X, a.At.Y)
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, x, y, s*markerRadius, a.Color.Hex())
		case *session.Arrow:
			pts := a.Outline()
			if pts == nil {
				continue
			}
			sb.WriteString(`<polygon points="`)
			for i, p := range pts {
				x, y := vp.ToScreen(p.X, p.Y)
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%.2f,%.2f", x, y)
			}
			fmt.Fprintf(&sb, `" fill="%s"/>
`, a.Color.Hex())
		case *session.Segments:
			sb.WriteString(`<g fill="none" stroke-width="1.5" stroke-linecap="round">` + "\n")
			for i := 1; i < len(a.Points) && i-1 < len(a.Colors); i++ {
				x0, y0 := vp.ToScreen(a.Points[i-1].X, a.Points[i-1].Y)
				x1, y1 := vp.ToScreen(a.Points[i].X, a.Points[i].Y)
				fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>
`, x0, y0, x1, y1, a.Colors[i-1].Hex())
			}
			sb.WriteString("</g>\n")
		case *session.Scatter:
			pts, cols := a.Shown()
			for i, p := range pts {
				x, y := vp.ToScreen(p.X, p.Y)
				fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, x, y, s*scatterRadius, cols[i].Hex())
			}
		case *session.Label:
			x, y := vp.ToScreen(a.At.X, a.At.Y)
			fmt.Fprintf(&sb, `<text x="%.2f" y="%.2f" font-family="serif" font-size="%.0f" dominant-baseline="hanging" fill="%s">%s</text>
`, x, y, a.Size, a.Color.Hex(), escape(a.Text))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeAxes(sb *strings.Builder, fig *session.Figure, vp *viz.Viewport) {
	x0, oy := vp.ToScreen(fig.XMin, 0)
	x1, _ := vp.ToScreen(fig.XMax, 0)
	ox, y0 := vp.ToScreen(0, fig.YMax)
	_, y1 := vp.ToScreen(0, fig.YMin)
	fmt.Fprintf(sb, `<g stroke="#000000" stroke-width="1">
<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, x0, oy, x1, oy, ox, y0, ox, y1)
	for _, t := range ticks(fig, vp) {
		fmt.Fprintf(sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, t[0], t[1], t[2], t[3])
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g font-family="sans-serif" font-size="12" fill="#000000">` + "\n")
	for _, l := range tickLabels(fig, vp) {
		fmt.Fprintf(sb, `<text x="%.2f" y="%.2f" text-anchor="middle">%s</text>
`, l.x, l.y, l.text)
	}
	sb.WriteString("</g>\n")
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
