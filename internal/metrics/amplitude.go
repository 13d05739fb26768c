package metrics

import (
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

// Angler converts a state into swing angles about the two axes.
type Angler interface {
	Angles(x dynamo.State) (thetaX, thetaY float64)
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// MaxAmplitude tracks the largest swing angle seen on one axis.
type MaxAmplitude struct {
	dyn  Angler
	axis Axis
	max  float64
}

func NewMaxAmplitude(dyn Angler, axis Axis) *MaxAmplitude {
	return &MaxAmplitude{dyn: dyn, axis: axis}
}

func (m *MaxAmplitude) Name() string { return "max_amplitude_" + m.axis.String() }

func (m *MaxAmplitude) Observe(x dynamo.State, u dynamo.Control, t float64) {
	tx, ty := m.dyn.Angles(x)
	v := tx
	if m.axis == AxisY {
		v = ty
	}
	m.max = math.Max(m.max, math.Abs(v))
}

func (m *MaxAmplitude) Value() float64 { return m.max }

func (m *MaxAmplitude) Reset() { m.max = 0 }

// Defaults returns the metrics recorded for sand pendulum runs.
func Defaults[T interface {
	dynamo.Hamiltonian
	Angler
}](dyn T) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(dyn),
		NewEnergyDrift(dyn),
		NewMaxAmplitude(dyn, AxisX),
		NewMaxAmplitude(dyn, AxisY),
	}
}
