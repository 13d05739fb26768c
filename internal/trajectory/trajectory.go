// Package trajectory turns a throw (initial position and velocity) into a
// sampled bob path, either from the closed form or by integrating the ODE.
package trajectory

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/metrics"
	"github.com/binnev/lissajous-patterns/internal/physics"
)

type Method string

const (
	Analytic Method = "analytic"
	Numeric  Method = "numeric"
)

// ErrClosedForm is returned when the analytic method is asked for a
// pendulum the closed form does not describe.
var ErrClosedForm = errors.New("trajectory: closed form needs a linear, undamped pendulum")

// Throw is an initial condition in metres and metres per second.
type Throw struct {
	X0, Y0   float64
	VX0, VY0 float64
}

type Request struct {
	Pendulum   physics.SandPendulum
	Throw      Throw
	TMax       float64
	Dt         float64
	Method     Method
	Integrator string
	// Adaptive integrates between samples with error-controlled substeps
	// to within Tolerance. Samples stay on the Dt grid.
	Adaptive  bool
	Tolerance float64
}

// Path is a trajectory sampled on t = 0, dt, ... < TMax.
type Path struct {
	Method       Method
	Times        []float64
	Points       []physics.Point
	Coefficients physics.Coefficients
	Metrics      map[string]float64
}

func (p *Path) Len() int { return len(p.Points) }

// Bounds returns the extent of the path.
func (p *Path) Bounds() (minX, maxX, minY, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points[1:] {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}

// States returns the path in the simulator's state layout, positions only.
func (p *Path) States() []dynamo.State {
	out := make([]dynamo.State, len(p.Points))
	for i, pt := range p.Points {
		out[i] = dynamo.State{pt.X, pt.Y}
	}
	return out
}

func Compute(ctx context.Context, req Request) (*Path, error) {
	pend := req.Pendulum
	if err := pend.Validate(); err != nil {
		return nil, err
	}

	th := req.Throw
	coeffs, err := physics.NewCoefficients(th.X0, th.VX0, th.Y0, th.VY0, &pend)
	if err != nil {
		return nil, err
	}

	switch req.Method {
	case Analytic, "":
		if !pend.Linear || pend.Damping != 0 {
			return nil, ErrClosedForm
		}
		times, points, err := coeffs.Range(&pend, req.TMax, req.Dt)
		if err != nil {
			return nil, err
		}
		return &Path{Method: Analytic, Times: times, Points: points, Coefficients: coeffs}, nil
	case Numeric:
		return integrate(ctx, &pend, coeffs, req)
	default:
		return nil, fmt.Errorf("unknown method: %s", req.Method)
	}
}

func integrate(ctx context.Context, pend *physics.SandPendulum, coeffs physics.Coefficients, req Request) (*Path, error) {
	if !(req.Dt > 0) || math.IsInf(req.Dt, 0) {
		return nil, fmt.Errorf("%w: time increment must be positive, got %v", dynamo.ErrParameterBounds, req.Dt)
	}
	if !(req.TMax > 0) || math.IsInf(req.TMax, 0) {
		return nil, fmt.Errorf("%w: time to simulate must be positive, got %v", dynamo.ErrParameterBounds, req.TMax)
	}

	name := req.Integrator
	if name == "" {
		name = "rk4"
	}
	integ, err := integrators.New(name)
	if err != nil {
		return nil, err
	}

	if req.TMax/req.Dt > physics.MaxSamples {
		return nil, fmt.Errorf("%w: t_max/d_time = %.3g is more than %d samples", dynamo.ErrParameterBounds, req.TMax/req.Dt, physics.MaxSamples)
	}
	x0 := physics.InitialState(req.Throw.X0, req.Throw.VX0, req.Throw.Y0, req.Throw.VY0)
	n := physics.SampleCount(req.TMax, req.Dt)

	path := &Path{
		Method:       Numeric,
		Times:        make([]float64, 0, n),
		Points:       make([]physics.Point, 0, n),
		Coefficients: coeffs,
		Metrics:      map[string]float64{},
	}

	if n == 1 {
		path.Times = append(path.Times, 0)
		path.Points = append(path.Points, physics.Point{X: x0[0], Y: x0[1]})
		return path, nil
	}

	sim := dynamo.New(pend, integ)
	for _, m := range metrics.Defaults(pend) {
		sim.AddMetric(m)
	}

	res, err := sim.Run(ctx, x0, dynamo.Config{
		Dt:            req.Dt,
		Duration:      float64(n-1) * req.Dt,
		Adaptive:      req.Adaptive,
		Tolerance:     req.Tolerance,
		MaxDt:         req.Dt,
		MinDt:         req.Dt * 1e-9,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		return nil, res.Errors[0]
	}

	for i, x := range res.States {
		path.Times = append(path.Times, res.Times[i])
		path.Points = append(path.Points, physics.Point{X: x[0], Y: x[1]})
	}
	for k, v := range res.Metrics {
		path.Metrics[k] = v
	}
	path.Metrics["energy_drift_total"] = res.EnergyDrift
	path.Metrics["steps_taken"] = float64(res.StepsTaken)

	return path, nil
}
