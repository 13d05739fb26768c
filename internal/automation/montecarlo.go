package automation

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

// MonteCarloConfig perturbs a base throw to see how far the small-angle
// figure drifts from the full pendulum.
type MonteCarloConfig struct {
	Base         trajectory.Throw
	Perturbation float64 // uniform on ±Perturbation per component
	NumTrials    int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID   int
	Throw     trajectory.Throw
	MaxAngle  float64 // radians
	Deviation float64 // metres between the nonlinear and closed-form paths
	Warnings  int
}

// RunMonteCarlo integrates the nonlinear pendulum for each trial and
// compares it with the closed form as the states stream out.
func RunMonteCarlo(ctx context.Context, cfg *config.Config, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	linear := cfg.Pendulum()
	linear.Linear = true
	linear.Damping = 0
	full := cfg.Pendulum()
	full.Linear = false

	name := cfg.Integrator
	if name == "" {
		name = "rk4"
	}
	integ, err := integrators.New(name)
	if err != nil {
		return nil, err
	}
	sim := dynamo.New(&full, integ)

	n := physics.SampleCount(cfg.TMax, cfg.DTime)
	run := dynamo.Config{
		Dt:            cfg.DTime,
		Duration:      float64(n-1) * cfg.DTime,
		Adaptive:      cfg.Adaptive,
		Tolerance:     cfg.Tolerance,
		MaxDt:         cfg.DTime,
		MinDt:         cfg.DTime * 1e-9,
		ValidateState: true,
	}

	results := make([]MonteCarloResult, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		jitter := func(v float64) float64 { return v + (rng.Float64()-0.5)*2*mc.Perturbation }
		th := trajectory.Throw{
			X0:  jitter(mc.Base.X0),
			Y0:  jitter(mc.Base.Y0),
			VX0: jitter(mc.Base.VX0),
			VY0: jitter(mc.Base.VY0),
		}

		c, err := physics.NewCoefficients(th.X0, th.VX0, th.Y0, th.VY0, &linear)
		if err != nil {
			return results, err
		}

		dev := 0.0
		if n > 1 {
			x0 := physics.InitialState(th.X0, th.VX0, th.Y0, th.VY0)
			err = sim.RunWithCallback(ctx, x0, run, func(x dynamo.State, t float64) bool {
				ax, ay := x.Position()
				ex, ey := c.Point(&linear, t)
				dev = math.Max(dev, math.Hypot(ax-ex, ay-ey))
				return true
			})
			if err != nil {
				return results, err
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Throw:     th,
			MaxAngle:  math.Max(c.AmpX, c.AmpY),
			Deviation: dev,
			Warnings:  len(c.Warnings()),
		})
	}
	return results, nil
}

// MonteCarloStats counts trials inside and outside the isochronism limit.
func MonteCarloStats(results []MonteCarloResult) (isochronous, beyond int) {
	for _, r := range results {
		if r.MaxAngle <= physics.IsochronismLimit {
			isochronous++
		} else {
			beyond++
		}
	}
	return
}
