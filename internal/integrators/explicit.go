package integrators

import "github.com/binnev/lissajous-patterns/internal/dynamo"

// RungeKutta steps any explicit tableau. Stage buffers are reused between
// steps, so one instance must not be shared across goroutines.
type RungeKutta struct {
	tab     Tableau
	k       []dynamo.State
	scratch dynamo.State
}

func NewRungeKutta(tab Tableau) *RungeKutta {
	return &RungeKutta{tab: tab}
}

func NewEuler() *RungeKutta    { return NewRungeKutta(EulerTableau) }
func NewMidpoint() *RungeKutta { return NewRungeKutta(MidpointTableau) }
func NewHeun() *RungeKutta     { return NewRungeKutta(HeunTableau) }
func NewRK4() *RungeKutta      { return NewRungeKutta(RK4Tableau) }

func (r *RungeKutta) Tableau() Tableau { return r.tab }

func (r *RungeKutta) ensureScratch(n int) {
	s := r.tab.Stages()
	if len(r.k) == s && len(r.scratch) == n {
		return
	}
	r.k = make([]dynamo.State, s)
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.scratch = make(dynamo.State, n)
}

// stages fills r.k for a step of size dt from x.
func (r *RungeKutta) stages(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) {
	n := len(x)
	r.ensureScratch(n)

	for s := 0; s < r.tab.Stages(); s++ {
		copy(r.scratch, x)
		for j, a := range r.tab.A[s] {
			if a == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				r.scratch[i] += dt * a * r.k[j][i]
			}
		}
		copy(r.k[s], dyn.Derive(r.scratch, u, t+r.tab.C[s]*dt))
	}
}

func (r *RungeKutta) combine(x dynamo.State, weights []float64, dt float64) dynamo.State {
	out := x.Clone()
	for s, b := range weights {
		if b == 0 {
			continue
		}
		for i := range out {
			out[i] += dt * b * r.k[s][i]
		}
	}
	return out
}

func (r *RungeKutta) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.stages(dyn, x, u, t, dt)
	return r.combine(x, r.tab.B, dt)
}
