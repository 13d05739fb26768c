package physics

import (
	"fmt"
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

const (
	DefaultGravity = 9.81
	DefaultLengthX = 1.0
	DefaultLengthY = 0.64
)

// SandPendulum is a Y-suspended pendulum: the whole string of length
// LengthX swings along x while only the lower part of length LengthY swings
// along y. State: [x, y, vx, vy] in metres and metres per second.
type SandPendulum struct {
	LengthX float64
	LengthY float64
	Gravity float64
	Damping float64
	// Linear selects the small-angle restoring force. When false the
	// restoring force uses the sine of the swing angle.
	Linear bool
}

func NewSandPendulum() *SandPendulum {
	return &SandPendulum{
		LengthX: DefaultLengthX,
		LengthY: DefaultLengthY,
		Gravity: DefaultGravity,
		Linear:  true,
	}
}

func (p *SandPendulum) StateDim() int   { return 4 }
func (p *SandPendulum) ControlDim() int { return 0 }

func (p *SandPendulum) Validate() error {
	check := func(name string, v float64, allowZero bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (v == 0 && !allowZero) {
			return fmt.Errorf("%w: %s = %v", dynamo.ErrParameterBounds, name, v)
		}
		return nil
	}
	if err := check("length_x", p.LengthX, false); err != nil {
		return err
	}
	if err := check("length_y", p.LengthY, false); err != nil {
		return err
	}
	if err := check("gravity", p.Gravity, false); err != nil {
		return err
	}
	return check("damping", p.Damping, true)
}

// OmegaX and OmegaY are the small-angle angular frequencies.
func (p *SandPendulum) OmegaX() float64 { return math.Sqrt(p.Gravity / p.LengthX) }
func (p *SandPendulum) OmegaY() float64 { return math.Sqrt(p.Gravity / p.LengthY) }

func (p *SandPendulum) restoring(pos, length float64) float64 {
	if p.Linear {
		return p.Gravity * pos / length
	}
	return p.Gravity * math.Sin(pos/length)
}

func (p *SandPendulum) Derive(x dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	px, py, vx, vy := x[0], x[1], x[2], x[3]

	ax := -p.restoring(px, p.LengthX) - p.Damping*vx
	ay := -p.restoring(py, p.LengthY) - p.Damping*vy

	return dynamo.State{vx, vy, ax, ay}
}

// Energy is the mechanical energy per unit mass.
func (p *SandPendulum) Energy(x dynamo.State) float64 {
	px, py, vx, vy := x[0], x[1], x[2], x[3]
	ke := 0.5 * (vx*vx + vy*vy)

	var pe float64
	if p.Linear {
		pe = 0.5*p.Gravity/p.LengthX*px*px + 0.5*p.Gravity/p.LengthY*py*py
	} else {
		pe = p.Gravity*p.LengthX*(1-math.Cos(px/p.LengthX)) +
			p.Gravity*p.LengthY*(1-math.Cos(py/p.LengthY))
	}
	return ke + pe
}

// InitialState packs a throw into the state layout.
func InitialState(x0, vx0, y0, vy0 float64) dynamo.State {
	return dynamo.State{x0, y0, vx0, vy0}
}

// Angles converts a state to swing angles (radians) about each axis.
func (p *SandPendulum) Angles(x dynamo.State) (thetaX, thetaY float64) {
	return x[0] / p.LengthX, x[1] / p.LengthY
}

func (p *SandPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length_x": p.LengthX,
		"length_y": p.LengthY,
		"gravity":  p.Gravity,
		"damping":  p.Damping,
	}
}

// SetParam updates one parameter. The previous value is kept when the new
// one is out of bounds.
func (p *SandPendulum) SetParam(name string, value float64) error {
	next := *p
	switch name {
	case "length_x":
		next.LengthX = value
	case "length_y":
		next.LengthY = value
	case "gravity":
		next.Gravity = value
	case "damping":
		next.Damping = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}
