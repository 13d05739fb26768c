// Package automation replays scripted gestures and randomised throws
// without a window.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/session"
)

// Scenario is a scripted sequence of gestures on the plot.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Params      *Params `yaml:"params"`
	PredictPath *bool   `yaml:"predict_path"`
	ShowRatio   *bool   `yaml:"show_ratio"`
	Steps       []Step  `yaml:"steps"`
}

// Params mirrors the parameter entry fields. Zero values keep the base
// configuration.
type Params struct {
	LengthX         float64 `yaml:"length_x"`
	LengthY         float64 `yaml:"length_y"`
	TMax            float64 `yaml:"t_max"`
	DTime           float64 `yaml:"d_time"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// Step is one action. A step with Press and Release drags between the two
// points; Frames advances the animation (-1 runs it to the end).
type Step struct {
	Press   []float64 `yaml:"press"`
	Release []float64 `yaml:"release"`
	Clear   bool      `yaml:"clear"`
	Frames  int       `yaml:"frames"`
	SaveAs  string    `yaml:"save_as"`
}

type SaveFunc func(base string, fig *session.Figure) ([]string, error)

type Report struct {
	Throws []*session.Throw
	Saved  []string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &sc, nil
}

// Configure applies the scenario's preset and overrides to base.
func (sc *Scenario) Configure(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if sc.Preset != "" {
		cfg = config.GetPreset(base, sc.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", sc.Preset)
		}
	}
	if p := sc.Params; p != nil {
		set := func(dst *float64, v float64) {
			if v != 0 {
				*dst = v
			}
		}
		set(&cfg.LengthX, p.LengthX)
		set(&cfg.LengthY, p.LengthY)
		set(&cfg.TMax, p.TMax)
		set(&cfg.DTime, p.DTime)
		set(&cfg.SpeedMultiplier, p.SpeedMultiplier)
	}
	if sc.PredictPath != nil {
		cfg.PredictPath = *sc.PredictPath
	}
	if sc.ShowRatio != nil {
		cfg.ShowRatio = *sc.ShowRatio
	}
	return cfg, cfg.Validate()
}

func point(name string, v []float64) (float64, float64, error) {
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("%s needs two coordinates, got %d", name, len(v))
	}
	return v[0], v[1], nil
}

// RunScenario replays every step on a fresh session.
func RunScenario(ctx context.Context, sc *Scenario, base *config.Config, save SaveFunc, opts ...session.Option) (*Report, error) {
	cfg, err := sc.Configure(base)
	if err != nil {
		return nil, err
	}
	s, err := session.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if step.Clear {
			s.Clear()
		}
		if step.Press != nil || step.Release != nil {
			th, err := drag(ctx, s, step)
			if err != nil {
				return rep, fmt.Errorf("step %d: %w", i+1, err)
			}
			if th != nil {
				rep.Throws = append(rep.Throws, th)
			}
		}
		switch {
		case step.Frames < 0:
			for s.Tick() {
			}
		default:
			for f := 0; f < step.Frames && s.Tick(); f++ {
			}
		}
		if step.SaveAs != "" {
			if save == nil {
				return rep, fmt.Errorf("step %d: nowhere to save %s", i+1, step.SaveAs)
			}
			paths, err := save(step.SaveAs, s.Figure())
			if err != nil {
				return rep, fmt.Errorf("step %d: %w", i+1, err)
			}
			rep.Saved = append(rep.Saved, paths...)
		}
	}
	return rep, nil
}

func drag(ctx context.Context, s *session.Session, step Step) (*session.Throw, error) {
	px, py, err := point("press", step.Press)
	if err != nil {
		return nil, err
	}
	rx, ry, err := point("release", step.Release)
	if err != nil {
		return nil, err
	}
	fig := s.Figure()
	inside := func(x, y float64) bool {
		return x >= fig.XMin && x <= fig.XMax && y >= fig.YMin && y <= fig.YMax
	}
	if !s.Press(session.Event{Button: session.ButtonLeft, X: px, Y: py, InAxes: inside(px, py)}) {
		return nil, nil
	}
	return s.Release(ctx, session.Event{Button: session.ButtonLeft, X: rx, Y: ry, InAxes: inside(rx, ry)})
}
