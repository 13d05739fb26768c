package integrators

import "github.com/binnev/lissajous-patterns/internal/dynamo"

// Verlet and Leapfrog assume the state is laid out as all positions
// followed by all velocities, with the derivative of a velocity entry being
// the acceleration.

type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}

	out := make(dynamo.State, n)
	acc := dyn.Derive(x, u, t)

	for i := 0; i < half; i++ {
		out[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		v.scratch[i] = out[i]
		v.scratch[half+i] = x[half+i]
	}

	// velocity-dependent forces (damping) see the old velocity here
	accNew := dyn.Derive(v.scratch, u, t+dt)
	for i := 0; i < half; i++ {
		out[half+i] = x[half+i] + 0.5*(acc[half+i]+accNew[half+i])*dt
	}

	return out
}

type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	out := make(dynamo.State, n)
	acc := dyn.Derive(x, u, t)

	// kick, drift, kick
	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + 0.5*dt*acc[half+i]
		out[i] = x[i] + dt*l.scratch[half+i]
		l.scratch[i] = out[i]
	}

	accNew := dyn.Derive(l.scratch, u, t+dt)
	for i := 0; i < half; i++ {
		out[half+i] = l.scratch[half+i] + 0.5*dt*accNew[half+i]
	}

	return out
}
