package viz

import "math"

// Rect is a screen rectangle. Screen y grows downwards.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Viewport maps world coordinates onto a screen rectangle with equal aspect.
// The world box is centred in the largest square that fits the screen.
type Viewport struct {
	Screen     Rect
	XMin, XMax float64
	YMin, YMax float64

	plot  Rect
	scale float64
}

func NewViewport(screen Rect, xmin, xmax, ymin, ymax float64) *Viewport {
	v := &Viewport{Screen: screen, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	v.layout()
	return v
}

// Unit is the [-1, 1] square used by the plot.
func Unit(screen Rect) *Viewport {
	return NewViewport(screen, -1, 1, -1, 1)
}

// ForCanvas covers a braille canvas in sub-pixel coordinates.
func ForCanvas(c *Canvas) *Viewport {
	return Unit(Rect{W: float64(c.Width*2 - 1), H: float64(c.Height*4 - 1)})
}

func (v *Viewport) layout() {
	ww, wh := v.XMax-v.XMin, v.YMax-v.YMin
	if ww <= 0 || wh <= 0 {
		v.scale = 0
		v.plot = v.Screen
		return
	}
	v.scale = math.Min(v.Screen.W/ww, v.Screen.H/wh)
	pw, ph := ww*v.scale, wh*v.scale
	v.plot = Rect{
		X: v.Screen.X + (v.Screen.W-pw)/2,
		Y: v.Screen.Y + (v.Screen.H-ph)/2,
		W: pw,
		H: ph,
	}
}

// Plot is the screen area covered by the world box.
func (v *Viewport) Plot() Rect { return v.plot }

// Scale is screen units per world unit.
func (v *Viewport) Scale() float64 { return v.scale }

func (v *Viewport) ToScreen(wx, wy float64) (sx, sy float64) {
	sx = v.plot.X + (wx-v.XMin)*v.scale
	sy = v.plot.Y + (v.YMax-wy)*v.scale
	return sx, sy
}

// ToWorld inverts ToScreen. ok is false when the point falls outside the
// axes.
func (v *Viewport) ToWorld(sx, sy float64) (wx, wy float64, ok bool) {
	if v.scale == 0 || !v.plot.Contains(sx, sy) {
		return 0, 0, false
	}
	wx = v.XMin + (sx-v.plot.X)/v.scale
	wy = v.YMax - (sy-v.plot.Y)/v.scale
	return wx, wy, true
}

// Cell converts a world point to the nearest integer screen position.
func (v *Viewport) Cell(wx, wy float64) (int, int) {
	sx, sy := v.ToScreen(wx, wy)
	return int(math.Round(sx)), int(math.Round(sy))
}

// CellToWorld maps a terminal cell to the world point at the centre of its
// braille dots.
func (v *Viewport) CellToWorld(col, row int) (wx, wy float64, ok bool) {
	return v.ToWorld(float64(col*2)+0.5, float64(row*4)+1.5)
}
