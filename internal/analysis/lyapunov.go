package analysis

import (
	"context"
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following a
// copy of the orbit displaced by d0 along dimension dim and renormalising
// the separation back to d0 after every step. A regular Lissajous orbit
// gives a value close to zero.
func LyapunovExponent(
	ctx context.Context,
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dim int,
	dt, duration, d0 float64,
) (float64, error) {
	if dim < 0 || dim >= len(x0) {
		return 0, dynamo.ErrDimensionMismatch
	}
	if !(dt > 0) || !(duration > 0) || !(d0 > 0) {
		return 0, dynamo.ErrParameterBounds
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[dim] += d0

	steps := dynamo.StepCount(duration, dt)
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		t := float64(i) * dt
		x = integ.Step(dyn, x, nil, t, dt)
		xp = integ.Step(dyn, xp, nil, t, dt)

		sep := xp.Distance(x)
		if !x.IsValid() || !xp.IsValid() {
			return 0, dynamo.ErrInvalidState
		}
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}
	if steps == 0 {
		return 0, nil
	}
	return sumLog / (float64(steps) * dt), nil
}

// LyapunovSpectrum runs LyapunovExponent once per state dimension.
func LyapunovSpectrum(
	ctx context.Context,
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration, d0 float64,
) ([]float64, error) {
	out := make([]float64, len(x0))
	for i := range x0 {
		l, err := LyapunovExponent(ctx, dyn, integ, x0, i, dt, duration, d0)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}
