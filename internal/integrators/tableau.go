package integrators

// Tableau is a Butcher tableau for an explicit Runge-Kutta method. A is
// strictly lower triangular; row i holds the weights of stages 0..i-1.
// BErr, when present, holds the difference between the propagating weights
// and the embedded lower-order weights.
type Tableau struct {
	Name  string
	Order int
	A     [][]float64
	B     []float64
	C     []float64
	BErr  []float64
}

func (t Tableau) Stages() int { return len(t.B) }

// Embedded reports whether the tableau carries an error estimator.
func (t Tableau) Embedded() bool { return len(t.BErr) == len(t.B) }

var EulerTableau = Tableau{
	Name:  "euler",
	Order: 1,
	A:     [][]float64{{}},
	B:     []float64{1},
	C:     []float64{0},
}

var MidpointTableau = Tableau{
	Name:  "midpoint",
	Order: 2,
	A: [][]float64{
		{},
		{0.5},
	},
	B: []float64{0, 1},
	C: []float64{0, 0.5},
}

var HeunTableau = Tableau{
	Name:  "heun",
	Order: 2,
	A: [][]float64{
		{},
		{1},
	},
	B: []float64{0.5, 0.5},
	C: []float64{0, 1},
}

var RK4Tableau = Tableau{
	Name:  "rk4",
	Order: 4,
	A: [][]float64{
		{},
		{0.5},
		{0, 0.5},
		{0, 0, 1},
	},
	B: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
	C: []float64{0, 0.5, 0.5, 1},
}

// Dormand-Prince 5(4). The last stage is evaluated at the new state, so the
// error estimate needs all seven stages.
var DormandPrinceTableau = Tableau{
	Name:  "rk45",
	Order: 5,
	A: [][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	},
	B: []float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
	C: []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
	BErr: []float64{
		35.0/384.0 - 5179.0/57600.0,
		0,
		500.0/1113.0 - 7571.0/16695.0,
		125.0/192.0 - 393.0/640.0,
		-2187.0/6784.0 - -92097.0/339200.0,
		11.0/84.0 - 187.0/2100.0,
		-1.0 / 40.0,
	},
}
