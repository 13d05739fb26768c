package physics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/physics"
)

var _ = Describe("Coefficients", func() {
	var p *physics.SandPendulum

	BeforeEach(func() {
		p = physics.NewSandPendulum()
	})

	It("derives the axis frequencies from the lengths", func() {
		c, err := physics.NewCoefficients(0.1, 0, 0.1, 0, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.OmegaX).To(BeNumerically("~", math.Sqrt(9.81), 1e-12))
		Expect(c.OmegaY).To(BeNumerically("~", math.Sqrt(9.81/0.64), 1e-12))

		tx, ty := c.Periods()
		Expect(ty / tx).To(BeNumerically("~", 0.8, 1e-12))
	})

	It("reproduces the initial position and velocity", func() {
		c, err := physics.NewCoefficients(0.12, -0.3, -0.05, 0.4, p)
		Expect(err).NotTo(HaveOccurred())

		x, y := c.Point(p, 0)
		Expect(x).To(BeNumerically("~", 0.12, 1e-12))
		Expect(y).To(BeNumerically("~", -0.05, 1e-12))

		vx, vy := c.Velocity(p, 0)
		Expect(vx).To(BeNumerically("~", -0.3, 1e-12))
		Expect(vy).To(BeNumerically("~", 0.4, 1e-12))
	})

	It("has zero phase for a release from rest", func() {
		c, err := physics.NewCoefficients(0.2, 0, 0.1, 0, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.PhaseX).To(BeNumerically("~", 0, 1e-15))
		Expect(c.AmpX).To(BeNumerically("~", 0.2, 1e-12))
		Expect(c.AmpY).To(BeNumerically("~", 0.1/0.64, 1e-12))
	})

	It("stays still without a throw", func() {
		c, err := physics.NewCoefficients(0, 0, 0, 0, p)
		Expect(err).NotTo(HaveOccurred())
		x, y := c.Point(p, 3.3)
		Expect(x).To(BeZero())
		Expect(y).To(BeZero())
	})

	It("rejects non-finite initial conditions and bad pendulums", func() {
		_, err := physics.NewCoefficients(math.NaN(), 0, 0, 0, p)
		Expect(err).To(MatchError(dynamo.ErrInvalidState))

		p.LengthY = 0
		_, err = physics.NewCoefficients(0, 0, 0, 0, p)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	Describe("Range", func() {
		It("samples the half-open time grid", func() {
			c, _ := physics.NewCoefficients(0.1, 0, 0, 0.2, p)
			times, points, err := c.Range(p, 5, 0.03)
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(167))
			Expect(points).To(HaveLen(167))
			Expect(times[0]).To(BeZero())
			Expect(times[166]).To(BeNumerically("<", 5))

			times, _, _ = c.Range(p, 1, 0.1)
			Expect(times).To(HaveLen(10))
		})

		It("rejects non-positive steps and durations", func() {
			c, _ := physics.NewCoefficients(0.1, 0, 0, 0, p)
			_, _, err := c.Range(p, 1, 0)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			_, _, err = c.Range(p, -1, 0.1)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("refuses grids longer than MaxSamples", func() {
			c, _ := physics.NewCoefficients(0.1, 0, 0, 0, p)
			_, _, err := c.Range(p, 1e7, 1e-3)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))

			times, _, err := c.Range(p, 976.5625, 1.0/1024)
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(physics.MaxSamples))
		})

		It("matches Point at every sample", func() {
			c, _ := physics.NewCoefficients(0.1, 0.3, -0.2, 0.1, p)
			times, points, _ := c.Range(p, 2, 0.1)
			for i, t := range times {
				x, y := c.Point(p, t)
				Expect(points[i].X).To(Equal(x))
				Expect(points[i].Y).To(Equal(y))
			}
		})
	})

	Describe("Warnings", func() {
		It("is quiet for small swings", func() {
			c, _ := physics.NewCoefficients(0.05, 0, 0.03, 0, p)
			Expect(c.Warnings()).To(BeEmpty())
		})

		It("flags amplitudes beyond the isochronism limit", func() {
			c, _ := physics.NewCoefficients(0.2, 0, 0.01, 0, p)
			w := c.Warnings()
			Expect(w).To(HaveLen(1))
			Expect(w[0].Axis).To(Equal("A_x"))
			Expect(w[0].Kind).To(Equal(physics.BeyondIsochronism))
			Expect(w[0].String()).To(ContainSubstring("isochronism"))
		})

		It("flags both limits for a wild throw", func() {
			c, _ := physics.NewCoefficients(0.5, 0, 0.5, 0, p)
			kinds := map[physics.WarningKind]int{}
			for _, w := range c.Warnings() {
				kinds[w.Kind]++
			}
			Expect(kinds[physics.BeyondIsochronism]).To(Equal(2))
			Expect(kinds[physics.BeyondPredictable]).To(Equal(2))
		})
	})

	Describe("agreement with the integrated ODE", func() {
		It("tracks the closed form to micrometres", func() {
			x0, vx0, y0, vy0 := 0.1, 0.2, -0.05, 0.3
			c, err := physics.NewCoefficients(x0, vx0, y0, vy0, p)
			Expect(err).NotTo(HaveOccurred())

			sim := dynamo.New(p, integrators.NewRK4())
			res, err := sim.Run(context.Background(), physics.InitialState(x0, vx0, y0, vy0),
				dynamo.Config{Dt: 1e-3, Duration: 5, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.EnergyDrift).To(BeNumerically("<", 1e-9))

			for i := 0; i < len(res.States); i += 250 {
				x, y := c.Point(p, res.Times[i])
				Expect(res.States[i][0]).To(BeNumerically("~", x, 1e-6))
				Expect(res.States[i][1]).To(BeNumerically("~", y, 1e-6))
			}
		})

		It("loses energy when damped", func() {
			p.Damping = 0.3
			sim := dynamo.New(p, integrators.NewRK4())
			x0 := physics.InitialState(0.1, 0, 0.05, 0)
			res, err := sim.Run(context.Background(), x0, dynamo.Config{Dt: 1e-2, Duration: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Energy(res.States[len(res.States)-1])).To(BeNumerically("<", p.Energy(x0)))
		})
	})
})
