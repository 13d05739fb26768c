package dynamo

import "math"

// State is a point in phase space. For the sand pendulum it is
// [x, y, vx, vy] in metres and metres per second.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Distance is the Euclidean distance between two states of equal length.
// Components missing from o count as zero.
func (s State) Distance(o State) float64 {
	sum := 0.0
	for i, v := range s {
		if i < len(o) {
			v -= o[i]
		}
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Position returns the first two components, the bob position of a
// planar pendulum.
func (s State) Position() (x, y float64) {
	if len(s) < 2 {
		return 0, 0
	}
	return s[0], s[1]
}

// Control is an external input vector. The sand pendulum is unforced, so
// runs pass nil.
type Control []float64

// System is a first order ODE dX/dt = Derive(X, u, t).
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Hamiltonian systems expose their total energy for drift checks.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// AdaptiveIntegrator also proposes the next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, u Control, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

// Configurable systems can be retuned by parameter name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

// DefaultConfig matches the plot defaults: 5 s sampled every 30 ms.
func DefaultConfig() Config {
	return Config{
		Dt:            0.03,
		Duration:      5.0,
		Tolerance:     1e-8,
		MaxDt:         0.03,
		MinDt:         1e-6,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64 // relative, final against initial
	StepsTaken  int
	Errors      []error
}
