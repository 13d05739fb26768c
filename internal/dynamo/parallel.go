package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one member of an ensemble: its own system and initial state.
type Job struct {
	Name   string
	System System
	X0     State
}

// Ensemble runs independent jobs concurrently. newIntegrator is called once
// per job because integrators keep scratch buffers.
type Ensemble struct {
	newIntegrator func() Integrator
	metrics       func() []Metric
	limit         int
}

func NewEnsemble(newIntegrator func() Integrator, limit int) *Ensemble {
	return &Ensemble{newIntegrator: newIntegrator, limit: limit}
}

// WithMetrics sets a factory for per-job metrics.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

// Run returns results in job order. The first failing job cancels the rest.
func (e *Ensemble) Run(ctx context.Context, jobs []Job, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			s := New(job.System, e.newIntegrator())
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, job.X0, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
