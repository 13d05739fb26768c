// Package session maps mouse gestures on the plot to pendulum throws and
// keeps the figure those throws draw. It does no rendering of its own and
// is not safe for concurrent use; front ends drive it from their event
// loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

var ErrNoPress = errors.New("session: release without a press")

// Event is a mouse event already mapped to world coordinates. InAxes is
// false when the pointer is outside the plot.
type Event struct {
	Button Button
	X, Y   float64
	InAxes bool
}

// Params are the values behind the parameter entry fields.
type Params struct {
	LengthX         float64
	LengthY         float64
	TMax            float64
	DTime           float64
	SpeedMultiplier float64
}

// Throw is the outcome of one press and release.
type Throw struct {
	Throw    trajectory.Throw
	Path     *trajectory.Path
	Warnings []physics.Warning
	Ratio    *physics.Ratio
}

type Option func(*Session)

// WithWarnings logs amplitude warnings for every throw.
func WithWarnings(l *log.Logger) Option {
	return func(s *Session) { s.warn = l }
}

// WithDebug logs the coefficients of every throw.
func WithDebug(l *log.Logger) Option {
	return func(s *Session) { s.debug = l }
}

type Session struct {
	cfg *config.Config
	fig *Figure

	press *physics.Point
	anim  *Animation
	last  *Throw

	warn  *log.Logger
	debug *log.Logger
}

func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg.Clone(), fig: NewFigure()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Figure() *Figure { return s.fig }

// Config returns a copy of the current settings.
func (s *Session) Config() *config.Config { return s.cfg.Clone() }

func (s *Session) Params() Params {
	return Params{
		LengthX:         s.cfg.LengthX,
		LengthY:         s.cfg.LengthY,
		TMax:            s.cfg.TMax,
		DTime:           s.cfg.DTime,
		SpeedMultiplier: s.cfg.SpeedMultiplier,
	}
}

// ApplyParams replaces the entry field values. Invalid values leave the
// current parameters untouched.
func (s *Session) ApplyParams(p Params) error {
	next := s.cfg.Clone()
	next.LengthX = p.LengthX
	next.LengthY = p.LengthY
	next.TMax = p.TMax
	next.DTime = p.DTime
	next.SpeedMultiplier = p.SpeedMultiplier
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

func (s *Session) PredictPath() bool { return s.cfg.PredictPath }
func (s *Session) ShowRatio() bool   { return s.cfg.ShowRatio }

func (s *Session) TogglePredictPath() bool {
	s.cfg.PredictPath = !s.cfg.PredictPath
	return s.cfg.PredictPath
}

func (s *Session) ToggleShowRatio() bool {
	s.cfg.ShowRatio = !s.cfg.ShowRatio
	return s.cfg.ShowRatio
}

// Pressed reports the pending press position, if any.
func (s *Session) Pressed() (physics.Point, bool) {
	if s.press == nil {
		return physics.Point{}, false
	}
	return *s.press, true
}

func (s *Session) Last() *Throw { return s.last }

// Press starts a throw. Only the left button inside the axes counts. A new
// press stops any running animation.
func (s *Session) Press(ev Event) bool {
	if ev.Button != ButtonLeft || !ev.InAxes {
		return false
	}
	s.stop()
	at := physics.Point{X: ev.X, Y: ev.Y}
	s.press = &at
	s.fig.Add(&Marker{At: at, Color: viz.Black})
	return true
}

// Release completes the throw started by Press: the drag times the speed
// multiplier becomes the initial velocity. A release outside the axes
// drops the pending press.
func (s *Session) Release(ctx context.Context, ev Event) (*Throw, error) {
	if s.press == nil {
		return nil, ErrNoPress
	}
	from := *s.press
	s.press = nil
	if !ev.InAxes {
		return nil, nil
	}

	to := physics.Point{X: ev.X, Y: ev.Y}
	dx, dy := to.X-from.X, to.Y-from.Y
	s.fig.Add(&Marker{At: to, Color: viz.Black})
	if dx != 0 || dy != 0 {
		s.fig.Add(&Arrow{From: from, To: to, Width: 0.02, Color: viz.Firebrick})
	}

	k := s.cfg.SpeedMultiplier
	th := trajectory.Throw{X0: from.X, Y0: from.Y, VX0: k * dx, VY0: k * dy}
	return s.throw(ctx, th)
}

// Throw runs a throw without a gesture, as the scripted commands do.
func (s *Session) Throw(ctx context.Context, th trajectory.Throw) (*Throw, error) {
	s.stop()
	s.fig.Add(&Marker{At: physics.Point{X: th.X0, Y: th.Y0}, Color: viz.Black})
	return s.throw(ctx, th)
}

func (s *Session) throw(ctx context.Context, th trajectory.Throw) (*Throw, error) {
	path, err := trajectory.Compute(ctx, s.cfg.Request(th))
	if err != nil {
		return nil, fmt.Errorf("throw from (%.3f, %.3f): %w", th.X0, th.Y0, err)
	}
	out := &Throw{Throw: th, Path: path, Warnings: path.Coefficients.Warnings()}
	s.report(out)

	if s.cfg.ShowRatio {
		pend := s.cfg.Pendulum()
		r, err := physics.FrequencyRatio(&pend)
		if err != nil {
			return nil, err
		}
		out.Ratio = &r
		s.fig.Add(&Label{
			At:    physics.Point{X: s.fig.XMin, Y: s.fig.YMax},
			Text:  r.Label(),
			Color: viz.Gray,
			Size:  20,
		})
	}

	colors := viz.InfernoR(path.Len(), 0.1, 1)
	if s.cfg.PredictPath && path.Len() > 1 {
		s.fig.Add(&Segments{Points: path.Points, Colors: colors[:path.Len()-1]})
	}

	sc := &Scatter{Points: path.Points, Colors: colors}
	s.fig.Add(sc)
	s.anim = &Animation{
		scatter:  sc,
		interval: time.Duration(s.cfg.DTime * float64(time.Second)),
	}
	s.last = out
	return out, nil
}

func (s *Session) report(t *Throw) {
	if s.debug != nil {
		c := t.Path.Coefficients
		tx, ty := c.Periods()
		s.debug.Printf("throw x0=%.4f y0=%.4f vx0=%.4f vy0=%.4f", t.Throw.X0, t.Throw.Y0, t.Throw.VX0, t.Throw.VY0)
		s.debug.Printf("periods Tx=%.4fs Ty=%.4fs omega x=%.4f y=%.4f rad/s", tx, ty, c.OmegaX, c.OmegaY)
		s.debug.Printf("amplitude x=%.4f y=%.4f rad phase x=%.4f y=%.4f rad", c.AmpX, c.AmpY, c.PhaseX, c.PhaseY)
	}
	if s.warn != nil {
		for _, w := range t.Warnings {
			s.warn.Print(w.String())
		}
	}
}

// Clear removes every artist and stops the animation.
func (s *Session) Clear() {
	s.stop()
	s.press = nil
	s.fig.Clear()
}

func (s *Session) stop() {
	if s.anim != nil {
		s.anim.done = true
		s.anim = nil
	}
}

// Animating reports whether a trail is still being revealed.
func (s *Session) Animating() bool { return s.anim != nil && !s.anim.done }

// Interval is the frame interval, d_time.
func (s *Session) Interval() time.Duration {
	if s.anim != nil {
		return s.anim.interval
	}
	return time.Duration(s.cfg.DTime * float64(time.Second))
}

// Tick reveals one more point of the trail and reports whether the
// animation is still running.
func (s *Session) Tick() bool {
	if s.anim == nil {
		return false
	}
	if !s.anim.Step() {
		s.anim = nil
		return false
	}
	return true
}

// Animation reveals a scatter one point per frame, from zero points up to
// the full path.
type Animation struct {
	scatter  *Scatter
	interval time.Duration
	done     bool
}

func (a *Animation) Step() bool {
	if a.done {
		return false
	}
	if a.scatter.Visible >= len(a.scatter.Points) {
		a.done = true
		return false
	}
	a.scatter.Visible++
	return true
}
