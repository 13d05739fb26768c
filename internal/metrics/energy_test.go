package metrics

import (
	"math"
	"testing"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/physics"
)

func TestEnergyMean(t *testing.T) {
	p := physics.NewSandPendulum()
	m := NewEnergy(p)

	if m.Value() != 0 {
		t.Error("expected zero energy before observations")
	}

	m.Observe(dynamo.State{0, 0, 1, 0}, nil, 0)
	m.Observe(dynamo.State{0, 0, 3, 0}, nil, 0)

	if got := m.Value(); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("expected mean energy 2.5, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	p := physics.NewSandPendulum()
	m := NewEnergyDrift(p)

	m.Observe(dynamo.State{0, 0, 2, 0}, nil, 0)
	m.Observe(dynamo.State{0, 0, 1, 0}, nil, 0.1)
	m.Observe(dynamo.State{0, 0, 2, 0}, nil, 0.2)

	if got := m.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("expected max drift 0.75, got %f", got)
	}

	m.Reset()
	m.Observe(dynamo.State{0, 0, 0, 0}, nil, 0)
	m.Observe(dynamo.State{0, 0, 1, 0}, nil, 0)
	if m.Value() != 0 {
		t.Error("drift relative to zero energy is undefined and reported as 0")
	}
}

func TestMaxAmplitude(t *testing.T) {
	p := physics.NewSandPendulum()
	mx := NewMaxAmplitude(p, AxisX)
	my := NewMaxAmplitude(p, AxisY)

	for _, x := range []dynamo.State{{0.1, 0.032, 0, 0}, {-0.3, 0, 0, 0}, {0.2, -0.064, 0, 0}} {
		mx.Observe(x, nil, 0)
		my.Observe(x, nil, 0)
	}

	if mx.Value() != 0.3 {
		t.Errorf("x amplitude = %v, want 0.3", mx.Value())
	}
	if math.Abs(my.Value()-0.1) > 1e-12 {
		t.Errorf("y amplitude = %v, want 0.1", my.Value())
	}
	if mx.Name() != "max_amplitude_x" || my.Name() != "max_amplitude_y" {
		t.Errorf("unexpected names %s %s", mx.Name(), my.Name())
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults(physics.NewSandPendulum())
	if len(ms) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(ms))
	}
	seen := map[string]bool{}
	for _, m := range ms {
		seen[m.Name()] = true
	}
	for _, name := range []string{"energy", "energy_drift", "max_amplitude_x", "max_amplitude_y"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
