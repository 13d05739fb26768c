package viz

import (
	"github.com/lucasb-eyer/go-colorful"
)

// infernoStops are evenly spaced samples of the inferno colour map.
var infernoStops = []colorful.Color{
	{R: 0.001462, G: 0.000466, B: 0.013866},
	{R: 0.087411, G: 0.044556, B: 0.224813},
	{R: 0.258234, G: 0.038571, B: 0.406485},
	{R: 0.416331, G: 0.090203, B: 0.432943},
	{R: 0.578304, G: 0.148039, B: 0.404411},
	{R: 0.735683, G: 0.215906, B: 0.330245},
	{R: 0.865006, G: 0.316822, B: 0.226055},
	{R: 0.954506, G: 0.468744, B: 0.099874},
	{R: 0.987622, G: 0.645320, B: 0.039886},
	{R: 0.964394, G: 0.843848, B: 0.273391},
	{R: 0.988362, G: 0.998364, B: 0.644924},
}

var (
	Black     = colorful.Color{R: 0, G: 0, B: 0}
	White     = colorful.Color{R: 1, G: 1, B: 1}
	Firebrick = colorful.Color{R: 0xb2 / 255.0, G: 0x22 / 255.0, B: 0x22 / 255.0}
	Gray      = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// Inferno samples the colour map at t in [0, 1], blending neighbouring
// stops in RGB.
func Inferno(t float64) colorful.Color {
	if t <= 0 {
		return infernoStops[0]
	}
	if t >= 1 {
		return infernoStops[len(infernoStops)-1]
	}
	pos := t * float64(len(infernoStops)-1)
	i := int(pos)
	return infernoStops[i].BlendRgb(infernoStops[i+1], pos-float64(i)).Clamped()
}

// InfernoR samples the reversed map at n points spread evenly over [lo, hi].
func InfernoR(n int, lo, hi float64) []colorful.Color {
	if n <= 0 {
		return nil
	}
	out := make([]colorful.Color, n)
	if n == 1 {
		out[0] = Inferno(1 - lo)
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = Inferno(1 - (lo + float64(i)*step))
	}
	return out
}
