package analysis

import (
	"context"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

// SweepPoint is the measured frequency ratio at one lower length.
type SweepPoint struct {
	LengthY  float64
	Expected float64
	Measured float64
}

// RatioSweep steps the lower length from lMin to lMax and measures f_y/f_x
// for the same throw at each step.
func RatioSweep(ctx context.Context, cfg *config.Config, th trajectory.Throw, lMin, lMax float64, steps int) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	step := (lMax - lMin) / float64(steps-1)

	out := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		c := cfg.Clone()
		c.LengthY = lMin + float64(i)*step
		if err := c.Validate(); err != nil {
			return out, err
		}

		path, err := trajectory.Compute(ctx, c.Request(th))
		if err != nil {
			return out, err
		}
		pend := c.Pendulum()
		rep, err := FrequencyReport(path, &pend)
		if err != nil {
			return out, err
		}
		out = append(out, SweepPoint{LengthY: c.LengthY, Expected: rep.Expected, Measured: rep.Measured})
	}
	return out, nil
}
