package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/binnev/lissajous-patterns/internal/analysis"
	"github.com/binnev/lissajous-patterns/internal/export"
	"github.com/binnev/lissajous-patterns/internal/storage"
)

func runThrow(cmd *cobra.Command, args []string) error {
	cfg, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("throwing from (%.3f, %.3f) with v = (%.3f, %.3f)...\n", cfg.Throw.X0, cfg.Throw.Y0, cfg.Throw.VX0, cfg.Throw.VY0)
	start := time.Now()
	th, err := s.Throw(context.Background(), cfg.InitialThrow())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, th.Throw, th.Path)
	if err != nil {
		return err
	}

	c := th.Path.Coefficients
	tx, ty := c.Periods()
	fmt.Printf("completed in %v (%s)\n", elapsed, th.Path.Method)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", th.Path.Len())
	fmt.Printf("periods: Tx=%.4fs Ty=%.4fs\n", tx, ty)
	fmt.Printf("amplitudes: A_x=%.4f A_y=%.4f rad\n", c.AmpX, c.AmpY)
	if th.Ratio != nil {
		fmt.Println(th.Ratio.Label())
	}
	for _, w := range th.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if len(th.Path.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(th.Path.Metrics))
		for name := range th.Path.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6g\n", name, th.Path.Metrics[name])
		}
	}

	if saveFigure {
		for s.Tick() {
		}
		paths, err := export.SaveFigure(cfg.Output, s.Figure(), export.DefaultSize)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("saved %s\n", p)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMETHOD\tL\tl\tT_MAX\tDT\tSAMPLES\tWARN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.LengthX,
			run.LengthY,
			run.TMax,
			run.Dt,
			run.Samples,
			len(run.Warnings),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	path, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if path.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n", path.Len())
	if meta.Ratio != "" {
		fmt.Println(meta.Ratio)
	}
	fmt.Println()

	xs := make([]float64, path.Len())
	ys := make([]float64, path.Len())
	for i, p := range path.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	for _, series := range []struct {
		data    []float64
		caption string
	}{{xs, "x (m) vs time"}, {ys, "y (m) vs time"}} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("figure:")
	fmt.Print(analysis.Braille(path.Points, 40, 20))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func target(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	path, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if path.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.ExportCSV(target(args), path)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	path, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(target(args), *meta, path)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	path, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if path.Len() < 2 {
		return fmt.Errorf("no path to draw")
	}
	svg := export.PathToSVG(path.Points, export.DefaultSize, export.DefaultSize)

	file := target(args)
	if file == "" || file == "-" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(file, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", file)
	return nil
}
