package integrators

import (
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

type RK45 struct {
	rk       *RungeKutta
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		rk:       NewRungeKutta(DormandPrinceTableau),
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step takes one fixed step of size dt whatever its error.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, u, t, dt)
	return xNew
}

// StepAdaptive advances by dt when the embedded error estimate is within
// tol and returns the step size it suggests next. A step above tol is
// rejected: x is returned unchanged with ErrStepRejected and a smaller
// step to retry with.
func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt, tol float64) (dynamo.State, float64, error) {
	xNew, errMax := r.attempt(dyn, x, u, t, dt)
	if !xNew.IsValid() {
		return xNew, dt * r.minScale, dynamo.ErrUnstable
	}

	errRatio := errMax / tol
	switch {
	case errRatio > 1:
		return x, dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25)), dynamo.ErrStepRejected
	case errRatio > 0:
		return xNew, dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2)), nil
	}
	return xNew, dt * r.maxScale, nil
}

// attempt takes the fifth order step and returns it with the largest
// scaled error of the embedded fourth order solution.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) (dynamo.State, float64) {
	tab := r.rk.tab

	// the seventh stage is evaluated at the new state
	r.rk.stages(dyn, x, u, t, dt)
	xNew := r.rk.combine(x, tab.B, dt)

	errMax := 0.0
	for i := range x {
		errEst := 0.0
		for s, e := range tab.BErr {
			errEst += e * r.rk.k[s][i]
		}
		errEst *= dt
		scale := math.Abs(x[i]) + math.Abs(dt*r.rk.k[0][i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}
	return xNew, errMax
}
