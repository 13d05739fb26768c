package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// StepCount is the number of fixed steps that fit in duration. The small
// epsilon absorbs rounding in products like 166*0.03.
func StepCount(duration, dt float64) int {
	return int(duration/dt + 1e-9)
}

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system wants %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	steps := StepCount(cfg.Duration, cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	h := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, nil, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, nil, t)
		}

		// States are recorded on the Dt grid in both modes. Adaptive runs
		// take as many substeps as the tolerance needs to reach the next
		// grid time.
		next := float64(i+1) * cfg.Dt
		var newX State
		if cfg.Adaptive {
			var taken int
			var stepErr error
			newX, h, taken, stepErr = s.advance(x, t, next, h, cfg)
			result.StepsTaken += taken
			if stepErr != nil {
				result.Errors = append(result.Errors, stepErr)
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, nil, t, cfg.Dt)
			result.StepsTaken++
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := &SimulationError{Step: i, Time: t, State: newX, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t = next
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrParameterBounds, cfg.Duration)
	}
	if cfg.Adaptive && !(cfg.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrParameterBounds)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.dyn.(Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}

// advance integrates from t to target in error-controlled substeps,
// starting from the step proposal h. It returns the state at target, the
// proposal for the following interval and the number of accepted substeps.
// A step that cannot shrink below MinDt is accepted and reported with
// ErrStepTooSmall.
func (s *Simulator) advance(x State, t, target, h float64, cfg Config) (State, float64, int, error) {
	minDt := cfg.MinDt
	if minDt <= 0 {
		minDt = cfg.Dt * 1e-9
	}
	eps := 1e-12 * math.Max(1, math.Abs(target))

	var stepErr error
	taken := 0
	for target-t > eps {
		if cfg.MaxDt > 0 {
			h = math.Min(h, cfg.MaxDt)
		}
		h = math.Max(h, minDt)
		step := math.Min(h, target-t)

		newX, next, ok, err := s.tryStep(x, t, step, cfg.Tolerance)
		if err != nil {
			return newX, h, taken, err
		}
		if !ok {
			if step > minDt {
				h = math.Max(next, minDt)
				continue
			}
			stepErr = ErrStepTooSmall
		}

		x = newX
		t += step
		taken++
		// a step clipped to land on target says little about h
		if step == h {
			h = next
		}
	}
	return x, h, taken, stepErr
}

// tryStep attempts one step of size h and reports whether its error
// estimate is within tol, with the step size suggested for the next
// attempt. Integrators without their own estimate use step doubling.
func (s *Simulator) tryStep(x State, t, h, tol float64) (State, float64, bool, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, next, err := adaptive.StepAdaptive(s.dyn, x, nil, t, h, tol)
		switch {
		case errors.Is(err, ErrStepRejected):
			return x, next, false, nil
		case err != nil:
			return newX, next, false, err
		}
		return newX, next, true, nil
	}

	full := s.integrator.Step(s.dyn, x, nil, t, h)
	half := s.integrator.Step(s.dyn, x, nil, t, h/2)
	x2 := s.integrator.Step(s.dyn, half, nil, t+h/2, h/2)

	e := full.Distance(x2)
	switch {
	case e > tol:
		return x, h / 2, false, nil
	case e < tol/10:
		return x2, 2 * h, true, nil
	}
	return x2, h, true, nil
}

// RunWithCallback streams every state on the Dt grid to callback until the
// duration is reached or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	steps := StepCount(cfg.Duration, cfg.Dt)
	h := cfg.Dt

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		if !callback(x, t) {
			return nil
		}
		if i == steps {
			break
		}

		if cfg.Adaptive {
			var err error
			x, h, _, err = s.advance(x, t, float64(i+1)*cfg.Dt, h, cfg)
			if err != nil && !errors.Is(err, ErrStepTooSmall) {
				return &SimulationError{Step: i, Time: t, State: x, Wrapped: err}
			}
		} else {
			x = s.integrator.Step(s.dyn, x, nil, t, cfg.Dt)
		}

		if cfg.ValidateState && !x.IsValid() {
			return &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrInvalidState}
		}
	}

	return nil
}
