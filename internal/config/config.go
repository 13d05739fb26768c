package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

const (
	DefaultLengthX         = physics.DefaultLengthX
	DefaultLengthY         = physics.DefaultLengthY
	DefaultGravity         = physics.DefaultGravity
	DefaultTMax            = 5.0
	DefaultDTime           = 0.03
	DefaultSpeedMultiplier = 4.0
	DefaultOutput          = "output"
	DefaultTolerance       = 1e-9

	// MinDTime is the shortest frame interval the animation can keep up
	// with.
	MinDTime = 0.001
)

type Config struct {
	LengthX         float64     `yaml:"length_x"`
	LengthY         float64     `yaml:"length_y"`
	Gravity         float64     `yaml:"gravity"`
	Damping         float64     `yaml:"damping"`
	Linear          bool        `yaml:"linear"`
	TMax            float64     `yaml:"t_max"`
	DTime           float64     `yaml:"d_time"`
	SpeedMultiplier float64     `yaml:"speed_multiplier"`
	Method          string      `yaml:"method"`
	Integrator      string      `yaml:"integrator"`
	Adaptive        bool        `yaml:"adaptive"`
	Tolerance       float64     `yaml:"tolerance"`
	PredictPath     bool        `yaml:"predict_path"`
	ShowRatio       bool        `yaml:"show_ratio"`
	Theme           string      `yaml:"theme"`
	Output          string      `yaml:"output"`
	Throw           ThrowConfig `yaml:"throw"`
}

// ThrowConfig is the initial condition used by non-interactive runs.
type ThrowConfig struct {
	X0  float64 `yaml:"x0"`
	Y0  float64 `yaml:"y0"`
	VX0 float64 `yaml:"vx0"`
	VY0 float64 `yaml:"vy0"`
}

func DefaultConfig() *Config {
	return &Config{
		LengthX:         DefaultLengthX,
		LengthY:         DefaultLengthY,
		Gravity:         DefaultGravity,
		Linear:          true,
		TMax:            DefaultTMax,
		DTime:           DefaultDTime,
		SpeedMultiplier: DefaultSpeedMultiplier,
		Method:          string(trajectory.Analytic),
		Integrator:      "rk4",
		Tolerance:       DefaultTolerance,
		PredictPath:     true,
		ShowRatio:       false,
		Theme:           "inferno",
		Output:          DefaultOutput,
		Throw: ThrowConfig{
			X0:  0.5,
			Y0:  0.3,
			VX0: 0,
			VY0: 0.8,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", dynamo.ErrParameterBounds, name, v)
	}
	return nil
}

// Validate rejects non-physical values.
func (c *Config) Validate() error {
	p := c.Pendulum()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := positive("t_max", c.TMax); err != nil {
		return err
	}
	if err := positive("d_time", c.DTime); err != nil {
		return err
	}
	if c.DTime < MinDTime {
		return fmt.Errorf("%w: d_time must be at least %v s, got %v", dynamo.ErrParameterBounds, MinDTime, c.DTime)
	}
	if c.TMax/c.DTime > physics.MaxSamples {
		return fmt.Errorf("%w: t_max/d_time = %.3g is more than %d samples", dynamo.ErrParameterBounds, c.TMax/c.DTime, physics.MaxSamples)
	}
	if math.IsNaN(c.SpeedMultiplier) || math.IsInf(c.SpeedMultiplier, 0) || c.SpeedMultiplier < 0 {
		return fmt.Errorf("%w: speed_multiplier must be non-negative, got %v", dynamo.ErrParameterBounds, c.SpeedMultiplier)
	}
	switch trajectory.Method(c.Method) {
	case trajectory.Analytic:
		if !c.Linear || c.Damping != 0 {
			return fmt.Errorf("%w: use method numeric for damped or nonlinear pendulums", trajectory.ErrClosedForm)
		}
		if c.Adaptive {
			return fmt.Errorf("adaptive stepping needs method numeric")
		}
	case trajectory.Numeric:
		if c.Adaptive {
			if err := positive("tolerance", c.Tolerance); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown method: %s", c.Method)
	}
	if _, err := integrators.Factory(c.Integrator); err != nil {
		return err
	}
	return nil
}

func (c *Config) Pendulum() physics.SandPendulum {
	return physics.SandPendulum{
		LengthX: c.LengthX,
		LengthY: c.LengthY,
		Gravity: c.Gravity,
		Damping: c.Damping,
		Linear:  c.Linear,
	}
}

// Request builds a trajectory request for the given throw.
func (c *Config) Request(th trajectory.Throw) trajectory.Request {
	return trajectory.Request{
		Pendulum:   c.Pendulum(),
		Throw:      th,
		TMax:       c.TMax,
		Dt:         c.DTime,
		Method:     trajectory.Method(c.Method),
		Integrator: c.Integrator,
		Adaptive:   c.Adaptive,
		Tolerance:  c.Tolerance,
	}
}

func (c *Config) InitialThrow() trajectory.Throw {
	return trajectory.Throw{X0: c.Throw.X0, Y0: c.Throw.Y0, VX0: c.Throw.VX0, VY0: c.Throw.VY0}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
