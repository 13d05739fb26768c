// Package dynamo steps ordinary differential equations.
//
// A [System] supplies dX/dt, an [Integrator] advances one step and a
// [Simulator] runs the loop, feeding every state to its metrics. The
// [Ensemble] runs independent jobs concurrently, one simulator each.
//
//	sim := dynamo.New(physics.NewSandPendulum(), integrators.NewRK4())
//	res, err := sim.Run(ctx, x0, dynamo.DefaultConfig())
package dynamo
