package session

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/binnev/lissajous-patterns/internal/physics"
)

// Artist is anything drawn on the figure. Renderers type-switch over the
// concrete artists below.
type Artist interface {
	artist()
}

// Marker is a single dot, drawn at press and release positions.
type Marker struct {
	At    physics.Point
	Color colorful.Color
}

// Arrow shows the throw from the press to the release position.
type Arrow struct {
	From, To physics.Point
	Width    float64
	Color    colorful.Color
}

// Segments is the predicted path. Segment i joins Points[i] and
// Points[i+1] and is drawn in Colors[i].
type Segments struct {
	Points []physics.Point
	Colors []colorful.Color
}

// Outline returns the arrow as a closed polygon in world coordinates. The
// head is three shaft widths wide and the arrow ends exactly at To.
func (a *Arrow) Outline() []physics.Point {
	dx, dy := a.To.X-a.From.X, a.To.Y-a.From.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux

	headW := 3 * a.Width
	headL := math.Min(1.5*headW, length)
	bx, by := a.To.X-ux*headL, a.To.Y-uy*headL
	w, h := a.Width/2, headW/2

	return []physics.Point{
		{X: a.From.X + nx*w, Y: a.From.Y + ny*w},
		{X: bx + nx*w, Y: by + ny*w},
		{X: bx + nx*h, Y: by + ny*h},
		{X: a.To.X, Y: a.To.Y},
		{X: bx - nx*h, Y: by - ny*h},
		{X: bx - nx*w, Y: by - ny*w},
		{X: a.From.X - nx*w, Y: a.From.Y - ny*w},
	}
}

// Scatter is the animated bob trail. Only the first Visible points are
// drawn.
type Scatter struct {
	Points  []physics.Point
	Colors  []colorful.Color
	Visible int
}

// Label is text anchored at its top-left corner.
type Label struct {
	At    physics.Point
	Text  string
	Color colorful.Color
	Size  float64
}

func (*Marker) artist()   {}
func (*Arrow) artist()    {}
func (*Segments) artist() {}
func (*Scatter) artist()  {}
func (*Label) artist()    {}

// Shown returns the visible prefix of the scatter.
func (s *Scatter) Shown() ([]physics.Point, []colorful.Color) {
	n := s.Visible
	if n > len(s.Points) {
		n = len(s.Points)
	}
	if n < 0 {
		n = 0
	}
	return s.Points[:n], s.Colors[:n]
}

// Figure is the ordered artist list shared by every renderer. Later
// artists draw on top.
type Figure struct {
	XMin, XMax float64
	YMin, YMax float64
	Artists    []Artist
}

func NewFigure() *Figure {
	return &Figure{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
}

func (f *Figure) Add(a Artist) {
	f.Artists = append(f.Artists, a)
}

func (f *Figure) Clear() {
	f.Artists = nil
}

func (f *Figure) Len() int { return len(f.Artists) }

// Count returns how many artists of each kind the figure holds, keyed by
// "marker", "arrow", "segments", "scatter" and "label".
func (f *Figure) Count() map[string]int {
	out := map[string]int{}
	for _, a := range f.Artists {
		switch a.(type) {
		case *Marker:
			out["marker"]++
		case *Arrow:
			out["arrow"]++
		case *Segments:
			out["segments"]++
		case *Scatter:
			out["scatter"]++
		case *Label:
			out["label"]++
		}
	}
	return out
}
