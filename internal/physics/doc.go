// Package physics models the compound sand pendulum that draws Lissajous
// figures.
//
// The pendulum swings along x with the total length L and along y with the
// shorter lower length l, so the two axes oscillate with ω = √(g/L) and
// √(g/l). Two views of the same motion are provided:
//
//   - [SandPendulum]: the ODE system, implementing [dynamo.System],
//     [dynamo.Hamiltonian] and [dynamo.Configurable]
//   - [Coefficients]: the closed-form small-angle solution
//     x = L·A·cos(ωt + δ)
//
// # Example
//
//	p := physics.NewSandPendulum()
//	c, _ := physics.NewCoefficients(0.2, 0, 0, 0.5, p)
//	x, y := c.Point(p, 1.5)
//
// Amplitudes beyond [IsochronismLimit] break the small-angle assumption;
// [Coefficients.Warnings] reports them.
package physics
