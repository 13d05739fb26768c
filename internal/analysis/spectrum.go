package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

var ErrTooShort = errors.New("analysis: too few samples for a spectrum")

// PowerSpectrum returns the magnitude of the one-sided spectrum of the
// mean-removed, Hann-windowed samples. Bin k is at k/(n·dt).
func PowerSpectrum(samples []float64) []float64 {
	n := len(samples)
	if n == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-zero frequency in Hz. The peak
// bin is refined by fitting a parabola to the log magnitudes around it.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if !(dt > 0) {
		return 0, fmt.Errorf("analysis: sample interval must be positive, got %v", dt)
	}
	if len(samples) < 8 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(samples)

	k := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[k] {
			k = i
		}
	}
	if ps[k] == 0 {
		return 0, nil
	}

	bin := float64(k)
	if k > 0 && k < len(ps)-1 && ps[k-1] > 0 && ps[k+1] > 0 {
		a, b, c := math.Log(ps[k-1]), math.Log(ps[k]), math.Log(ps[k+1])
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return bin / (float64(len(samples)) * dt), nil
}

// Report compares the measured axis frequencies of a path with the small
// angle prediction.
type Report struct {
	FX, FY   float64
	Measured float64 // f_y / f_x
	Expected float64 // √(L/l)
	RelErr   float64
}

func FrequencyReport(path *trajectory.Path, pend *physics.SandPendulum) (Report, error) {
	if path.Len() < 2 {
		return Report{}, ErrTooShort
	}
	dt := path.Times[1] - path.Times[0]
	xs := make([]float64, path.Len())
	ys := make([]float64, path.Len())
	for i, p := range path.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	fx, err := DominantFrequency(xs, dt)
	if err != nil {
		return Report{}, fmt.Errorf("x axis: %w", err)
	}
	fy, err := DominantFrequency(ys, dt)
	if err != nil {
		return Report{}, fmt.Errorf("y axis: %w", err)
	}
	if fx == 0 || fy == 0 {
		return Report{}, errors.New("analysis: an axis does not oscillate")
	}

	r := Report{
		FX:       fx,
		FY:       fy,
		Measured: fy / fx,
		Expected: math.Sqrt(pend.LengthX / pend.LengthY),
	}
	r.RelErr = math.Abs(r.Measured-r.Expected) / r.Expected
	return r, nil
}
