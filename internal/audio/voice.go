// Package audio plays a throw as sound: x on the left channel, y on the
// right, sped up until the x swing sits at an audible pitch. An
// oscilloscope in XY mode fed with the output redraws the figure.
package audio

import (
	"math"
	"sync"

	"github.com/binnev/lissajous-patterns/internal/physics"
)

const (
	SampleRate   = 44100
	BufferSize   = 1024
	DefaultPitch = 220.0

	fadeSeconds = 0.02
)

// Voice renders the closed-form motion into stereo buffers. SetThrow may be
// called from another goroutine while the stream runs.
type Voice struct {
	mu     sync.Mutex
	coeffs physics.Coefficients
	gainX  float64
	gainY  float64
	active bool

	pitch  float64
	t      float64 // pendulum time, seconds
	fade   float64
	Volume float64
}

func NewVoice(pitch float64) *Voice {
	if !(pitch > 0) {
		pitch = DefaultPitch
	}
	return &Voice{pitch: pitch, Volume: 0.25}
}

// SetThrow starts playing a new throw from t = 0 with a short fade in.
func (v *Voice) SetThrow(c physics.Coefficients, p *physics.SandPendulum) {
	ax, ay := p.LengthX*c.AmpX, p.LengthY*c.AmpY
	m := math.Max(ax, ay)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.coeffs = c
	v.t = 0
	v.fade = 0
	v.active = m > 0
	if v.active {
		v.gainX, v.gainY = ax/m, ay/m
	}
}

func (v *Voice) Silence() {
	v.mu.Lock()
	v.active = false
	v.mu.Unlock()
}

// TimeScale is how many pendulum seconds pass per second of audio.
func (v *Voice) TimeScale() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timeScale()
}

func (v *Voice) timeScale() float64 {
	if v.coeffs.OmegaX == 0 {
		return 0
	}
	return v.pitch * 2 * math.Pi / v.coeffs.OmegaX
}

// Fill writes one buffer of non-interleaved stereo samples.
func (v *Voice) Fill(out [][]float32) {
	if len(out) < 2 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	n := min(len(out[0]), len(out[1]))
	if !v.active {
		for i := 0; i < n; i++ {
			out[0][i], out[1][i] = 0, 0
		}
		return
	}

	c := v.coeffs
	step := v.timeScale() / SampleRate
	fadeStep := 1 / (fadeSeconds * SampleRate)
	for i := 0; i < n; i++ {
		g := v.Volume * v.fade
		out[0][i] = float32(g * v.gainX * math.Cos(c.OmegaX*v.t+c.PhaseX))
		out[1][i] = float32(g * v.gainY * math.Cos(c.OmegaY*v.t+c.PhaseY))
		v.t += step
		v.fade = math.Min(1, v.fade+fadeStep)
	}
}
