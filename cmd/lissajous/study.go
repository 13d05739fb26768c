package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/binnev/lissajous-patterns/internal/analysis"
	"github.com/binnev/lissajous-patterns/internal/automation"
	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/experiment"
	"github.com/binnev/lissajous-patterns/internal/integrators"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/storage"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var (
		path *trajectory.Path
		pend physics.SandPendulum
		th   trajectory.Throw
	)
	if len(args) > 0 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		if path, err = st.LoadPath(args[0]); err != nil {
			return err
		}
		pend = physics.SandPendulum{
			LengthX: meta.LengthX,
			LengthY: meta.LengthY,
			Gravity: meta.Gravity,
			Damping: meta.Damping,
			Linear:  meta.Linear,
		}
		th = trajectory.Throw{X0: meta.Throw.X0, Y0: meta.Throw.Y0, VX0: meta.Throw.VX0, VY0: meta.Throw.VY0}
		cfg.LengthX, cfg.LengthY = meta.LengthX, meta.LengthY
		cfg.Gravity, cfg.Damping, cfg.Linear = meta.Gravity, meta.Damping, meta.Linear
		if meta.Dt > 0 {
			cfg.DTime = meta.Dt
			cfg.TMax = meta.TMax
		}
		if meta.Integrator != "" {
			cfg.Integrator = meta.Integrator
		}
		fmt.Printf("analyzing run %s\n\n", meta.ID)
	} else {
		pend = cfg.Pendulum()
		th = cfg.InitialThrow()
		if path, err = trajectory.Compute(ctx, cfg.Request(th)); err != nil {
			return err
		}
	}

	rep, err := analysis.FrequencyReport(path, &pend)
	if err != nil {
		return err
	}
	fmt.Println("=== frequency ===")
	fmt.Printf("f_x:      %.4f Hz (expected %.4f)\n", rep.FX, pend.OmegaX()/(2*math.Pi))
	fmt.Printf("f_y:      %.4f Hz (expected %.4f)\n", rep.FY, pend.OmegaY()/(2*math.Pi))
	fmt.Printf("f_y/f_x:  %.4f (expected %.4f, error %.2f%%)\n", rep.Measured, rep.Expected, 100*rep.RelErr)

	xs := make([]float64, path.Len())
	for i, p := range path.Points {
		xs[i] = p.X
	}
	if spec := analysis.PowerSpectrum(xs); len(spec) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spec,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("x power spectrum"),
		))
	}

	states := path.States()
	section := analysis.PoincareSection(states, 1, 0, 0, 1)
	fmt.Println("\n=== section ===")
	fmt.Printf("%d upward crossings of y = 0\n", len(section))
	for i, p := range section {
		if i == 8 {
			fmt.Printf("  ... %d more\n", len(section)-i)
			break
		}
		fmt.Printf("  x = %+.4f m\n", p.X)
	}
	if pp := analysis.NewPhasePortrait(states, 0, 1); pp != nil && len(pp.Points) > 0 {
		fmt.Println()
		fmt.Print(analysis.Braille(pp.Points, 40, 12))
	}

	if lyapunov {
		name := cfg.Integrator
		if name == "" {
			name = "rk4"
		}
		integ, err := integrators.New(name)
		if err != nil {
			return err
		}
		x0 := physics.InitialState(th.X0, th.VX0, th.Y0, th.VY0)
		spec, err := analysis.LyapunovSpectrum(ctx, &pend, integ, x0, cfg.DTime, cfg.TMax, 1e-8)
		if err != nil {
			return err
		}
		fmt.Println("\n=== stability ===")
		largest := math.Inf(-1)
		for i, l := range spec {
			fmt.Printf("λ(%s): %+.5f 1/s\n", stateLabels[i], l)
			largest = math.Max(largest, l)
		}
		fmt.Printf("largest lyapunov exponent: %.5f 1/s\n", largest)
	}

	if sweepSteps > 0 {
		pts, err := analysis.RatioSweep(ctx, cfg, th, sweepMin, sweepMax, sweepSteps)
		if err != nil {
			return err
		}
		fmt.Println("\n=== ratio sweep ===")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "l\tEXPECTED\tMEASURED")
		for _, p := range pts {
			fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\n", p.LengthY, p.Expected, p.Measured)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// stateLabels names the components of physics.InitialState.
var stateLabels = []string{"x", "y", "vx", "vy"}

// Ratios with a larger reduced denominator take too long to close to
// be seen as a closed figure.
const closedDenom = 12

func printConstants(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pend := cfg.Pendulum()
	tx, ty := 2*math.Pi/pend.OmegaX(), 2*math.Pi/pend.OmegaY()

	fmt.Printf("g:       %.4g m/s²\n", pend.Gravity)
	fmt.Printf("L:       %.4g m\n", pend.LengthX)
	fmt.Printf("l:       %.4g m\n", pend.LengthY)
	fmt.Printf("ω_x:     %.4f rad/s (T = %.4fs)\n", pend.OmegaX(), tx)
	fmt.Printf("ω_y:     %.4f rad/s (T = %.4fs)\n", pend.OmegaY(), ty)
	if r, err := physics.FrequencyRatio(&pend); err == nil {
		fmt.Printf("ratio:   %s\n", r.Label())
		if r.Simple(closedDenom) {
			fmt.Printf("closed:  yes, repeats every %.4gs\n", float64(r.Num().Int64())*tx)
		} else {
			fmt.Printf("closed:  no (denominator above %d)\n", closedDenom)
		}
	}
	fmt.Printf("samples: %d (t_max %.3gs, dt %.3gs)\n", physics.SampleCount(cfg.TMax, cfg.DTime), cfg.TMax, cfg.DTime)
	fmt.Printf("isochronism limit:    %.3f rad\n", physics.IsochronismLimit)
	fmt.Printf("predictability limit: %.3f rad (%.0f°)\n", physics.PredictabilityLimit, physics.PredictabilityLimit*180/math.Pi)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRATIO\tl (L=1)\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d:%d\t%.4f\t%s\n", name, p.Num, p.Den, p.LengthY(1), p.Description)
	}
	return w.Flush()
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}
	entries, err := experiment.Gallery(context.Background(), cfg, names, workers)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := config.Presets[e.Preset]
		fmt.Printf("%s (%d:%d) %s\n", e.Preset, p.Num, p.Den, p.Description)
		fmt.Print(analysis.Braille(e.Path.Points, 30, 10))
		fmt.Println()
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Linear || cfg.Damping != 0 {
		return fmt.Errorf("compare needs a linear, undamped pendulum")
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}
	results, err := experiment.CompareIntegrators(context.Background(), cfg, cfg.InitialThrow(), names)
	if err != nil {
		return err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].MaxError < results[j].MaxError })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX ERROR (m)\tENERGY DRIFT\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%v\n", r.Integrator, r.MaxError, r.EnergyDrift, r.Elapsed)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunMonteCarlo(context.Background(), cfg, &automation.MonteCarloConfig{
		Base:         cfg.InitialThrow(),
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tX0\tY0\tVX0\tVY0\tMAX ANGLE\tDEVIATION (m)\tWARN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\t%.3e\t%d\n",
			r.TrialID, r.Throw.X0, r.Throw.Y0, r.Throw.VX0, r.Throw.VY0,
			r.MaxAngle, r.Deviation, r.Warnings)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	iso, beyond := automation.MonteCarloStats(results)
	fmt.Printf("\n%d of %d trials within the isochronism limit, %d beyond\n", iso, len(results), beyond)
	return nil
}
