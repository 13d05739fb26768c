package experiment

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

// Comparison scores one integrator against the closed form.
type Comparison struct {
	Integrator  string
	MaxError    float64 // metres
	EnergyDrift float64
	Elapsed     time.Duration
}

// CompareIntegrators integrates the same throw with each named integrator
// and measures the largest distance from the analytic path. cfg must
// describe a linear, undamped pendulum.
func CompareIntegrators(ctx context.Context, cfg *config.Config, th trajectory.Throw, names []string) ([]Comparison, error) {
	req := cfg.Request(th)
	req.Method = trajectory.Analytic
	exact, err := trajectory.Compute(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			r := req
			r.Method = trajectory.Numeric
			r.Integrator = name

			start := time.Now()
			path, err := trajectory.Compute(ctx, r)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			maxErr := 0.0
			for j := range exact.Points {
				if j >= path.Len() {
					break
				}
				d := math.Hypot(path.Points[j].X-exact.Points[j].X, path.Points[j].Y-exact.Points[j].Y)
				maxErr = math.Max(maxErr, d)
			}
			out[i] = Comparison{
				Integrator:  name,
				MaxError:    maxErr,
				EnergyDrift: path.Metrics["energy_drift_total"],
				Elapsed:     elapsed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
