package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, u Control, time float64) State {
	return State{-x[0]}
}

func (d *decay) StateDim() int   { return 1 }
func (d *decay) ControlDim() int { return 0 }

type oscillator struct{}

func (o *oscillator) Derive(x State, u Control, t float64) State {
	return State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

func (o *oscillator) Energy(x State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

type eulerStep struct{}

func (e *eulerStep) Step(dyn System, x State, u Control, time float64, dt float64) State {
	dx := dyn.Derive(x, u, time)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

type blowUp struct{}

func (b *blowUp) Step(dyn System, x State, u Control, time float64, dt float64) State {
	return State{math.NaN()}
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	if got := result.Times[10]; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected final time 1.0, got %v", got)
	}

	finalState := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(finalState-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, finalState)
	}
}

func TestSimulatorStepCountRounding(t *testing.T) {
	tests := []struct {
		duration, dt float64
		want         int
	}{
		{1.0, 0.1, 10},
		{166 * 0.03, 0.03, 166},
		{5.0, 0.03, 166},
		{0.3, 0.1, 3},
	}

	for _, tt := range tests {
		if got := StepCount(tt.duration, tt.dt); got != tt.want {
			t.Errorf("StepCount(%v, %v) = %d, want %d", tt.duration, tt.dt, got, tt.want)
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"NaN dt", Config{Dt: math.NaN(), Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
		{"adaptive without tolerance", Config{Dt: 0.1, Duration: 1.0, Adaptive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), State{1.0}, tt.cfg)
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(&oscillator{}, &eulerStep{})
	_, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorStopsOnInvalidState(t *testing.T) {
	sim := New(&decay{}, &blowUp{})
	cfg := Config{Dt: 0.1, Duration: 1.0, ValidateState: true}

	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorEnergyDrift(t *testing.T) {
	sim := New(&oscillator{}, &eulerStep{})
	result, err := sim.Run(context.Background(), State{1, 0}, Config{Dt: 0.01, Duration: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// explicit Euler gains energy on an oscillator
	if result.EnergyDrift <= 0 {
		t.Errorf("expected positive drift, got %v", result.EnergyDrift)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x State, u Control, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	metric := &testMetric{}
	sim.AddMetric(metric)

	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	var times []float64
	err := sim.RunWithCallback(context.Background(), State{1.0}, Config{Dt: 0.25, Duration: 1.0}, func(x State, t float64) bool {
		times = append(times, t)
		return true
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(times) != 5 {
		t.Errorf("expected 5 callbacks, got %d", len(times))
	}

	calls := 0
	err = sim.RunWithCallback(context.Background(), State{1.0}, Config{Dt: 0.25, Duration: 1.0}, func(x State, t float64) bool {
		calls++
		return calls < 2
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected callback to stop after 2 calls, got %d", calls)
	}
}

func TestEnsembleRun(t *testing.T) {
	jobs := []Job{
		{Name: "a", System: &oscillator{}, X0: State{1, 0}},
		{Name: "b", System: &oscillator{}, X0: State{0, 1}},
		{Name: "c", System: &decay{}, X0: State{2}},
	}

	ens := NewEnsemble(func() Integrator { return &eulerStep{} }, 2).
		WithMetrics(func() []Metric { return []Metric{&testMetric{}} })

	results, err := ens.Run(context.Background(), jobs, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[2].States[0][0] != 2 {
		t.Errorf("results out of job order: %v", results[2].States[0])
	}
	for i, r := range results {
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("job %d missing metric", i)
		}
	}
}

func TestEnsembleError(t *testing.T) {
	jobs := []Job{
		{Name: "ok", System: &decay{}, X0: State{1}},
		{Name: "bad", System: &oscillator{}, X0: State{1}},
	}
	ens := NewEnsemble(func() Integrator { return &eulerStep{} }, 0)
	if _, err := ens.Run(context.Background(), jobs, Config{Dt: 0.1, Duration: 1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorAdaptiveKeepsGrid(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})
	cfg := Config{Dt: 0.1, Duration: 1, Adaptive: true, Tolerance: 1, MaxDt: 10}

	res, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Times) != 11 || len(res.States) != 11 {
		t.Fatalf("expected 11 samples, got %d times %d states", len(res.Times), len(res.States))
	}
	for i, tm := range res.Times {
		if math.Abs(tm-float64(i)*0.1) > 1e-12 {
			t.Errorf("sample %d at t=%v, want %v", i, tm, float64(i)*0.1)
		}
	}
	if last := res.Times[len(res.Times)-1]; last > cfg.Duration+1e-12 {
		t.Errorf("run overshot the duration: %v", last)
	}
}

func TestSimulatorAdaptiveAccuracy(t *testing.T) {
	cfg := Config{Dt: 0.1, Duration: 1, Adaptive: true, Tolerance: 1e-6, MaxDt: 0.1, MinDt: 1e-9}
	res, err := New(&decay{}, &eulerStep{}).Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.StepsTaken <= 10 {
		t.Errorf("a tight tolerance should subdivide, took %d steps", res.StepsTaken)
	}

	fixed, _ := New(&decay{}, &eulerStep{}).Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1})
	exact := math.Exp(-1)
	adaptiveErr := math.Abs(res.States[len(res.States)-1][0] - exact)
	fixedErr := math.Abs(fixed.States[len(fixed.States)-1][0] - exact)
	if adaptiveErr > 2e-3 || adaptiveErr >= fixedErr {
		t.Errorf("adaptive error %v, fixed error %v", adaptiveErr, fixedErr)
	}
	if math.Abs(res.Times[len(res.Times)-1]-1) > 1e-12 {
		t.Errorf("last sample at %v", res.Times[len(res.Times)-1])
	}
}

type rejectOnce struct {
	eulerStep
	rejected bool
}

func (r *rejectOnce) StepAdaptive(dyn System, x State, u Control, t, dt, tol float64) (State, float64, error) {
	if !r.rejected {
		r.rejected = true
		return x, dt / 4, ErrStepRejected
	}
	return r.Step(dyn, x, u, t, dt), dt, nil
}

func TestSimulatorAdaptiveRetriesRejectedStep(t *testing.T) {
	integ := &rejectOnce{}
	res, err := New(&decay{}, integ).Run(context.Background(), State{1.0},
		Config{Dt: 0.1, Duration: 0.1, Adaptive: true, Tolerance: 1e-3, MinDt: 1e-6})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 0.1 rejected, then four accepted steps of 0.025
	if res.StepsTaken != 4 {
		t.Errorf("expected 4 accepted substeps, got %d", res.StepsTaken)
	}
	want := math.Pow(1-0.025, 4)
	if got := res.States[1][0]; math.Abs(got-want) > 1e-12 {
		t.Errorf("state %v, want %v", got, want)
	}
}

func TestRunWithCallbackAdaptiveMatchesRun(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})
	cfg := Config{Dt: 0.1, Duration: 1, Adaptive: true, Tolerance: 1e-6, MaxDt: 0.1}

	res, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var got []float64
	err = sim.RunWithCallback(context.Background(), State{1.0}, cfg, func(x State, tm float64) bool {
		if want := float64(len(got)) * cfg.Dt; math.Abs(tm-want) > 1e-12 {
			t.Errorf("callback at t=%v, want %v", tm, want)
		}
		got = append(got, x[0])
		return true
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(got) != len(res.States) {
		t.Fatalf("expected %d callbacks, got %d", len(res.States), len(got))
	}
	for i, x := range res.States {
		if math.Abs(got[i]-x[0]) > 1e-15 {
			t.Errorf("state %d: callback %v, Run %v", i, got[i], x[0])
		}
	}
}
