package export

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

// RenderFigure rasterises the figure the same way FigureToSVG lays it out.
func RenderFigure(fig *session.Figure, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := &raster{img: img}
	r.fill(color.White)

	vp := figureViewport(fig, size)
	s := float64(size)

	black := toRGBA(viz.Black)
	x0, oy := vp.ToScreen(fig.XMin, 0)
	x1, _ := vp.ToScreen(fig.XMax, 0)
	ox, y0 := vp.ToScreen(0, fig.YMax)
	_, y1 := vp.ToScreen(0, fig.YMin)
	r.line(x0, oy, x1, oy, black)
	r.line(ox, y0, ox, y1, black)
	for _, t := range ticks(fig, vp) {
		r.line(t[0], t[1], t[2], t[3], black)
	}
	for _, l := range tickLabels(fig, vp) {
		r.text(l.x-float64(len(l.text))*3.5, l.y, l.text, black)
	}

	for _, a := range fig.Artists {
		switch a := a.(type) {
		case *session.Marker:
			x, y := vp.ToScreen(a.At.X, a.At.Y)
			r.disc(x, y, s*markerRadius, toRGBA(a.Color))
		case *session.Arrow:
			pts := a.Outline()
			if pts == nil {
				continue
			}
			r.polygon(screen(vp, pts), toRGBA(a.Color))
		case *session.Segments:
			for i := 1; i < len(a.Points) && i-1 < len(a.Colors); i++ {
				xa, ya := vp.ToScreen(a.Points[i-1].X, a.Points[i-1].Y)
				xb, yb := vp.ToScreen(a.Points[i].X, a.Points[i].Y)
				r.line(xa, ya, xb, yb, toRGBA(a.Colors[i-1]))
			}
		case *session.Scatter:
			pts, cols := a.Shown()
			for i, p := range pts {
				x, y := vp.ToScreen(p.X, p.Y)
				r.disc(x, y, s*scatterRadius, toRGBA(cols[i]))
			}
		case *session.Label:
			x, y := vp.ToScreen(a.At.X, a.At.Y)
			r.text(x, y+13, asciiLabel(a.Text), toRGBA(a.Color))
		}
	}
	return img
}

// WritePNG renders the figure to a size×size PNG file.
func WritePNG(path string, fig *session.Figure, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, RenderFigure(fig, size)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// asciiLabel spells out the glyphs the bitmap font lacks.
func asciiLabel(s string) string {
	return strings.ReplaceAll(s, "√", "sqrt")
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func screen(vp *viz.Viewport, pts []physics.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		x, y := vp.ToScreen(p.X, p.Y)
		out[i] = [2]float64{x, y}
	}
	return out
}

type raster struct {
	img *image.RGBA
}

func (r *raster) fill(c color.Color) {
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.img.Set(x, y, c)
		}
	}
}

func (r *raster) set(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return
	}
	r.img.SetRGBA(x, y, c)
}

// line draws a Bresenham line between rounded endpoints.
func (r *raster) line(fx0, fy0, fx1, fy1 float64, c color.RGBA) {
	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		r.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *raster) disc(cx, cy, radius float64, c color.RGBA) {
	radius = math.Max(radius, 1)
	for y := int(math.Floor(cy - radius)); y <= int(math.Ceil(cy+radius)); y++ {
		for x := int(math.Floor(cx - radius)); x <= int(math.Ceil(cx+radius)); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= radius {
				r.set(x, y, c)
			}
		}
	}
}

// polygon fills a closed polygon with the even-odd rule, sampling pixel
// centres.
func (r *raster) polygon(pts [][2]float64, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts {
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		py := float64(y) + 0.5
		var xs []float64
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a[1] <= py) == (b[1] <= py) {
				continue
			}
			xs = append(xs, a[0]+(py-a[1])*(b[0]-a[0])/(b[1]-a[1]))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i] - 0.5)); float64(x)+0.5 <= xs[i+1]; x++ {
				r.set(x, y, c)
			}
		}
	}
}

func (r *raster) text(x, y float64, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(s)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
