// Package experiment runs batches of throws: the preset gallery and the
// integrator comparison.
package experiment

import (
	"context"
	"fmt"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

type GalleryEntry struct {
	Preset string
	Config *config.Config
	Path   *trajectory.Path
}

// Gallery integrates every named preset concurrently with base's
// integrator, at most limit at a time. Entries keep the order of names.
func Gallery(ctx context.Context, base *config.Config, names []string, limit int) ([]GalleryEntry, error) {
	newInteg, err := integrators.Factory(base.Integrator)
	if err != nil {
		return nil, err
	}
	n := physics.SampleCount(base.TMax, base.DTime)
	if n < 2 {
		return nil, fmt.Errorf("%w: gallery needs at least two samples", dynamo.ErrParameterBounds)
	}

	entries := make([]GalleryEntry, len(names))
	jobs := make([]dynamo.Job, len(names))
	for i, name := range names {
		cfg := config.GetPreset(base, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		pend := cfg.Pendulum()
		th := cfg.InitialThrow()
		coeffs, err := physics.NewCoefficients(th.X0, th.VX0, th.Y0, th.VY0, &pend)
		if err != nil {
			return nil, err
		}

		entries[i] = GalleryEntry{
			Preset: name,
			Config: cfg,
			Path:   &trajectory.Path{Method: trajectory.Numeric, Coefficients: coeffs},
		}
		jobs[i] = dynamo.Job{
			Name:   name,
			System: &pend,
			X0:     physics.InitialState(th.X0, th.VX0, th.Y0, th.VY0),
		}
	}

	results, err := dynamo.NewEnsemble(newInteg, limit).Run(ctx, jobs, dynamo.Config{
		Dt:            base.DTime,
		Duration:      float64(n-1) * base.DTime,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}

	for i, res := range results {
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("preset %s: %w", names[i], res.Errors[0])
		}
		p := entries[i].Path
		p.Times = res.Times
		p.Points = make([]physics.Point, len(res.States))
		for j, x := range res.States {
			px, py := x.Position()
			p.Points[j] = physics.Point{X: px, Y: py}
		}
	}
	return entries, nil
}
