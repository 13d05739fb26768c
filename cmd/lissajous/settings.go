package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

var (
	dataDir    string
	configFile string
	preset     string
	warnings   bool
	debug      bool

	lengthX    float64
	lengthY    float64
	gravity    float64
	damping    float64
	nonlinear  bool
	tMax       float64
	dTime      float64
	speed      float64
	method     string
	integrator string
	adaptive   bool
	tolerance  float64
	x0, y0     float64
	vx0, vy0   float64
	predict    bool
	ratio      bool
	theme      string
	output     string

	sound      bool
	saveFigure bool
	lyapunov   bool
	sweepSteps int
	sweepMin   float64
	sweepMax   float64
	workers    int
	trials     int
	perturb    float64
	seed       int64
	listenFor  time.Duration
	pitch      float64
	storeRuns  bool
)

func addSettingsFlags(fs *pflag.FlagSet) {
	d := config.DefaultConfig()
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&preset, "preset", "", "frequency ratio preset (see presets)")
	fs.BoolVar(&warnings, "warnings", false, "log amplitude warnings")
	fs.BoolVar(&debug, "debug", false, "log throw coefficients")

	fs.Float64Var(&lengthX, "length-x", d.LengthX, "total length L (m)")
	fs.Float64Var(&lengthY, "length-y", d.LengthY, "length of pendulum 2, l (m)")
	fs.Float64Var(&gravity, "gravity", d.Gravity, "gravitational acceleration (m/s²)")
	fs.Float64Var(&damping, "damping", d.Damping, "linear damping (1/s)")
	fs.BoolVar(&nonlinear, "nonlinear", !d.Linear, "use the full sin restoring force")
	fs.Float64Var(&tMax, "t-max", d.TMax, "time to simulate (s)")
	fs.Float64Var(&dTime, "dt", d.DTime, "time increment and frame interval (s)")
	fs.Float64Var(&speed, "speed", d.SpeedMultiplier, "speed multiplier applied to the drag")
	fs.StringVar(&method, "method", d.Method, "analytic or numeric")
	fs.StringVar(&integrator, "integrator", d.Integrator, "integrator for the numeric method")
	fs.BoolVar(&adaptive, "adaptive", d.Adaptive, "error-controlled substeps for the numeric method")
	fs.Float64Var(&tolerance, "tolerance", d.Tolerance, "error tolerance for --adaptive")
	fs.Float64Var(&x0, "x0", d.Throw.X0, "initial x (m)")
	fs.Float64Var(&y0, "y0", d.Throw.Y0, "initial y (m)")
	fs.Float64Var(&vx0, "vx0", d.Throw.VX0, "initial x velocity (m/s)")
	fs.Float64Var(&vy0, "vy0", d.Throw.VY0, "initial y velocity (m/s)")
	fs.BoolVar(&predict, "predict", d.PredictPath, "draw the predicted path")
	fs.BoolVar(&ratio, "ratio", d.ShowRatio, "label the frequency ratio")
	fs.StringVar(&theme, "theme", d.Theme, "terminal colour theme")
	fs.StringVar(&output, "output", d.Output, "figure file name without extension")
}

// loadConfig builds the settings: a preset, then the config file, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(cfg, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	f := cmd.Flags()
	float := func(name string, dst *float64, v float64) {
		if f.Changed(name) {
			*dst = v
		}
	}
	float("length-x", &cfg.LengthX, lengthX)
	float("length-y", &cfg.LengthY, lengthY)
	float("gravity", &cfg.Gravity, gravity)
	float("damping", &cfg.Damping, damping)
	float("t-max", &cfg.TMax, tMax)
	float("dt", &cfg.DTime, dTime)
	float("speed", &cfg.SpeedMultiplier, speed)
	float("tolerance", &cfg.Tolerance, tolerance)
	float("x0", &cfg.Throw.X0, x0)
	float("y0", &cfg.Throw.Y0, y0)
	float("vx0", &cfg.Throw.VX0, vx0)
	float("vy0", &cfg.Throw.VY0, vy0)
	if f.Changed("nonlinear") {
		cfg.Linear = !nonlinear
	}
	if f.Changed("method") {
		cfg.Method = method
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if f.Changed("predict") {
		cfg.PredictPath = predict
	}
	if f.Changed("ratio") {
		cfg.ShowRatio = ratio
	}
	if f.Changed("theme") {
		cfg.Theme = theme
	}
	if f.Changed("output") {
		cfg.Output = output
	}

	// The closed form cannot describe these, so fall back to integrating
	// unless a method was asked for.
	if (!cfg.Linear || cfg.Damping != 0) && cfg.Method == string(trajectory.Analytic) && !f.Changed("method") {
		cfg.Method = string(trajectory.Numeric)
		debugf("damped or nonlinear pendulum: using the numeric method")
	}
	if cfg.Adaptive && cfg.Method == string(trajectory.Analytic) && !f.Changed("method") {
		cfg.Method = string(trajectory.Numeric)
		debugf("adaptive stepping: using the numeric method")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "lissajous: ", 0)
}

func debugf(format string, args ...any) {
	if debug {
		newLogger().Printf(format, args...)
	}
}

func sessionOptions() []session.Option {
	var opts []session.Option
	if warnings {
		opts = append(opts, session.WithWarnings(newLogger()))
	}
	if debug {
		opts = append(opts, session.WithDebug(newLogger()))
	}
	return opts
}

func newSession(cmd *cobra.Command) (*config.Config, *session.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(cfg, sessionOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}
