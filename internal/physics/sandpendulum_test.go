package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

func TestSandPendulumDerive(t *testing.T) {
	p := NewSandPendulum()
	dx := p.Derive(dynamo.State{0.1, 0.064, 0.5, -0.2}, nil, 0)

	if dx[0] != 0.5 || dx[1] != -0.2 {
		t.Errorf("position derivatives should be velocities, got %v", dx[:2])
	}
	if want := -9.81 * 0.1; math.Abs(dx[2]-want) > 1e-12 {
		t.Errorf("ax = %v, want %v", dx[2], want)
	}
	if want := -9.81 * 0.1; math.Abs(dx[3]-want) > 1e-12 {
		t.Errorf("ay = %v, want %v", dx[3], want)
	}
}

func TestSandPendulumDamping(t *testing.T) {
	p := NewSandPendulum()
	p.Damping = 0.5
	dx := p.Derive(dynamo.State{0, 0, 1, 2}, nil, 0)
	if dx[2] != -0.5 || dx[3] != -1 {
		t.Errorf("damping terms wrong: %v", dx[2:])
	}
}

func TestSandPendulumNonlinear(t *testing.T) {
	p := NewSandPendulum()
	p.Linear = false

	x := dynamo.State{0.5, 0, 0, 0}
	dx := p.Derive(x, nil, 0)
	if want := -9.81 * math.Sin(0.5); math.Abs(dx[2]-want) > 1e-12 {
		t.Errorf("ax = %v, want %v", dx[2], want)
	}

	// the sine restoring force is weaker than the linear one
	p.Linear = true
	if lin := p.Derive(x, nil, 0); math.Abs(lin[2]) <= math.Abs(dx[2]) {
		t.Errorf("linear %v should exceed nonlinear %v", lin[2], dx[2])
	}
}

func TestSandPendulumEnergy(t *testing.T) {
	p := NewSandPendulum()
	if e := p.Energy(dynamo.State{0, 0, 0, 0}); e != 0 {
		t.Errorf("rest energy = %v", e)
	}
	if e := p.Energy(dynamo.State{0, 0, 3, 4}); math.Abs(e-12.5) > 1e-12 {
		t.Errorf("kinetic energy = %v, want 12.5", e)
	}

	// nonlinear potential matches the linear one for tiny swings
	x := dynamo.State{1e-3, 1e-3, 0, 0}
	lin := p.Energy(x)
	p.Linear = false
	if nl := p.Energy(x); math.Abs(nl-lin)/lin > 1e-5 {
		t.Errorf("nonlinear %v vs linear %v", nl, lin)
	}
}

func TestSandPendulumValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SandPendulum)
	}{
		{"zero length_x", func(p *SandPendulum) { p.LengthX = 0 }},
		{"negative length_y", func(p *SandPendulum) { p.LengthY = -1 }},
		{"NaN gravity", func(p *SandPendulum) { p.Gravity = math.NaN() }},
		{"infinite length", func(p *SandPendulum) { p.LengthX = math.Inf(1) }},
		{"negative damping", func(p *SandPendulum) { p.Damping = -0.1 }},
	}

	if err := NewSandPendulum().Validate(); err != nil {
		t.Fatalf("default pendulum invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSandPendulum()
			tt.mutate(p)
			if err := p.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSandPendulumParams(t *testing.T) {
	p := NewSandPendulum()

	if err := p.SetParam("length_y", 0.25); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if p.GetParams()["length_y"] != 0.25 {
		t.Errorf("length_y not updated: %v", p.GetParams())
	}

	if err := p.SetParam("length_y", -1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if p.LengthY != 0.25 {
		t.Errorf("rejected value should not be applied, got %v", p.LengthY)
	}

	if err := p.SetParam("mass", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestInitialStateLayout(t *testing.T) {
	x := InitialState(1, 2, 3, 4)
	if x[0] != 1 || x[1] != 3 || x[2] != 2 || x[3] != 4 {
		t.Errorf("unexpected layout %v", x)
	}

	p := NewSandPendulum()
	tx, ty := p.Angles(dynamo.State{0.5, 0.32, 0, 0})
	if tx != 0.5 || math.Abs(ty-0.5) > 1e-12 {
		t.Errorf("Angles = (%v, %v)", tx, ty)
	}
}

func TestFrequencyRatio(t *testing.T) {
	tests := []struct {
		lx, ly     float64
		num, denom int64
		label      string
	}{
		{1, 0.64, 4, 5, "√(l/L) = 4/5 = 0.8"},
		{1, 0.25, 1, 2, "√(l/L) = 1/2 = 0.5"},
		{1, 1, 1, 1, "√(l/L) = 1/1 = 1"},
		{2, 0.5, 1, 2, "√(l/L) = 1/2 = 0.5"},
	}

	for _, tt := range tests {
		p := &SandPendulum{LengthX: tt.lx, LengthY: tt.ly, Gravity: DefaultGravity, Linear: true}
		r, err := FrequencyRatio(p)
		if err != nil {
			t.Fatalf("FrequencyRatio: %v", err)
		}
		if r.Num().Int64() != tt.num || r.Denom().Int64() != tt.denom {
			t.Errorf("L=%v l=%v: got %s, want %d/%d", tt.lx, tt.ly, r.Exact, tt.num, tt.denom)
		}
		if r.Label() != tt.label {
			t.Errorf("label %q, want %q", r.Label(), tt.label)
		}
		if !r.Simple(10) {
			t.Errorf("%s should be simple", r.Exact)
		}
	}

	p := &SandPendulum{LengthX: 1, LengthY: 0.5, Gravity: DefaultGravity}
	r, _ := FrequencyRatio(p)
	if r.Simple(100) {
		t.Errorf("√0.5 should not reduce to a small fraction, got %s", r.Exact)
	}

	if _, err := FrequencyRatio(&SandPendulum{}); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
