package physics

import (
	"fmt"
	"math"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
)

const (
	// IsochronismLimit is the swing amplitude (radians) above which the
	// period starts to depend noticeably on amplitude.
	IsochronismLimit = 0.1
)

// MaxSamples bounds the number of samples a single path may hold.
const MaxSamples = 1_000_000

// PredictabilityLimit is 20 degrees; beyond it the closed form is no
// longer a useful description of the motion.
var PredictabilityLimit = 20 * math.Pi / 180

// Point is a bob position in metres.
type Point struct {
	X, Y float64
}

// Coefficients describe the small-angle solution θ(t) = A·cos(ωt + δ) on
// each axis. Amplitudes are angles in radians.
type Coefficients struct {
	AmpX, AmpY     float64
	OmegaX, OmegaY float64
	PhaseX, PhaseY float64
}

// NewCoefficients fits the closed form to an initial position and velocity.
func NewCoefficients(x0, vx0, y0, vy0 float64, p *SandPendulum) (Coefficients, error) {
	if err := p.Validate(); err != nil {
		return Coefficients{}, err
	}
	for _, v := range []float64{x0, vx0, y0, vy0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coefficients{}, fmt.Errorf("%w: initial condition %v", dynamo.ErrInvalidState, v)
		}
	}

	wx, wy := p.OmegaX(), p.OmegaY()

	// p: angle, q: angular velocity
	px, py := x0/p.LengthX, y0/p.LengthY
	qx, qy := vx0/p.LengthX, vy0/p.LengthY

	return Coefficients{
		AmpX:   math.Sqrt(px*px + qx*qx/(wx*wx)),
		AmpY:   math.Sqrt(py*py + qy*qy/(wy*wy)),
		OmegaX: wx,
		OmegaY: wy,
		PhaseX: math.Atan2(-qx, px*wx),
		PhaseY: math.Atan2(-qy, py*wy),
	}, nil
}

// Periods returns the oscillation period of each axis in seconds.
func (c Coefficients) Periods() (tx, ty float64) {
	return 2 * math.Pi / c.OmegaX, 2 * math.Pi / c.OmegaY
}

// Point evaluates the bob position at time t.
func (c Coefficients) Point(p *SandPendulum, t float64) (x, y float64) {
	x = p.LengthX * c.AmpX * math.Cos(c.OmegaX*t+c.PhaseX)
	y = p.LengthY * c.AmpY * math.Cos(c.OmegaY*t+c.PhaseY)
	return x, y
}

// Velocity evaluates the bob velocity at time t.
func (c Coefficients) Velocity(p *SandPendulum, t float64) (vx, vy float64) {
	vx = -p.LengthX * c.AmpX * c.OmegaX * math.Sin(c.OmegaX*t+c.PhaseX)
	vy = -p.LengthY * c.AmpY * c.OmegaY * math.Sin(c.OmegaY*t+c.PhaseY)
	return vx, vy
}

// SampleCount is the number of samples on the half-open grid [0, tMax)
// with spacing dt.
func SampleCount(tMax, dt float64) int {
	if !(tMax > 0) || !(dt > 0) {
		return 0
	}
	n := int(math.Ceil(tMax/dt - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Range samples the trajectory at t = 0, dt, 2dt, ... strictly below tMax.
func (c Coefficients) Range(p *SandPendulum, tMax, dt float64) ([]float64, []Point, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, nil, fmt.Errorf("%w: time increment must be positive, got %v", dynamo.ErrParameterBounds, dt)
	}
	if !(tMax > 0) || math.IsInf(tMax, 0) {
		return nil, nil, fmt.Errorf("%w: time to simulate must be positive, got %v", dynamo.ErrParameterBounds, tMax)
	}

	if tMax/dt > MaxSamples {
		return nil, nil, fmt.Errorf("%w: %v s at %v s steps is more than %d samples", dynamo.ErrParameterBounds, tMax, dt, MaxSamples)
	}
	n := SampleCount(tMax, dt)
	times := make([]float64, n)
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		x, y := c.Point(p, t)
		times[i] = t
		points[i] = Point{X: x, Y: y}
	}
	return times, points, nil
}

type WarningKind int

const (
	// BeyondIsochronism: amplitude larger than IsochronismLimit.
	BeyondIsochronism WarningKind = iota
	// BeyondPredictable: amplitude larger than PredictabilityLimit.
	BeyondPredictable
)

type Warning struct {
	Axis      string
	Amplitude float64
	Limit     float64
	Kind      WarningKind
}

func (w Warning) String() string {
	what := "the isochronism limit"
	if w.Kind == BeyondPredictable {
		what = "the upper limit for predictable pendulum behaviour"
	}
	return fmt.Sprintf("%s is > %.3f radians; it is %.3f radians (%.3f degrees). This breaks %s.",
		w.Axis, w.Limit, w.Amplitude, w.Amplitude*180/math.Pi, what)
}

// Warnings lists every amplitude limit the fitted motion exceeds.
func (c Coefficients) Warnings() []Warning {
	var out []Warning
	amps := []struct {
		name string
		amp  float64
	}{{"A_x", c.AmpX}, {"A_y", c.AmpY}}

	for _, a := range amps {
		if a.amp > IsochronismLimit {
			out = append(out, Warning{Axis: a.name, Amplitude: a.amp, Limit: IsochronismLimit, Kind: BeyondIsochronism})
		}
	}
	for _, a := range amps {
		if a.amp > PredictabilityLimit {
			out = append(out, Warning{Axis: a.name, Amplitude: a.amp, Limit: PredictabilityLimit, Kind: BeyondPredictable})
		}
	}
	return out
}
