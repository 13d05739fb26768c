package main

import (
	"os"

	"github.com/spf13/cobra"
)

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "lissajous",
		Short:        "sand pendulum Lissajous pattern lab",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lissajous", "run store directory")
	addSettingsFlags(pf)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the interactive plot window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&sound, "sound", false, "play each throw as a stereo Lissajous tone")
	guiCmd.Flags().Float64Var(&pitch, "pitch", 220, "tone of the x axis in Hz")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive plot in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "throw once from the configured initial condition and store the path",
		Args:  cobra.NoArgs,
		RunE:  runThrow,
	}
	runCmd.Flags().BoolVar(&saveFigure, "figure", false, "also save the finished figure to --output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "export run samples to CSV (stdout when file is omitted or -)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "draw a stored path as SVG",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure the frequency ratio of a run, or of the configured throw",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "estimate the largest Lyapunov exponent")
	analyzeCmd.Flags().IntVar(&sweepSteps, "sweep", 0, "sweep the lower length over this many steps")
	analyzeCmd.Flags().Float64Var(&sweepMin, "sweep-min", 0.2, "smallest lower length of the sweep (m)")
	analyzeCmd.Flags().Float64Var(&sweepMax, "sweep-max", 1.0, "largest lower length of the sweep (m)")

	constantsCmd := &cobra.Command{
		Use:   "constants",
		Short: "print frequencies, periods and limits for the current settings",
		Args:  cobra.NoArgs,
		RunE:  printConstants,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list frequency ratio presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	galleryCmd := &cobra.Command{
		Use:   "gallery [preset...]",
		Short: "draw every preset side by side",
		RunE:  runGallery,
	}
	galleryCmd.Flags().IntVar(&workers, "workers", 4, "presets integrated at once")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed form",
		RunE:  compareIntegrators,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the configured throw and measure how far the full pendulum drifts",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of perturbed throws")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.05, "perturbation of each initial value")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "play the configured throw as sound",
		Args:  cobra.NoArgs,
		RunE:  listen,
	}
	listenCmd.Flags().DurationVar(&listenFor, "for", 0, "stop after this long (0 waits for enter)")
	listenCmd.Flags().Float64Var(&pitch, "pitch", 220, "tone of the x axis in Hz")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay a scripted sequence of throws",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&storeRuns, "store", false, "save every throw to the run store")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, analyzeCmd, constantsCmd, presetsCmd, galleryCmd, compareCmd, monteCarloCmd, listenCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
