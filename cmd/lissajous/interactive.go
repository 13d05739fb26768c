package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/binnev/lissajous-patterns/internal/audio"
	"github.com/binnev/lissajous-patterns/internal/automation"
	"github.com/binnev/lissajous-patterns/internal/export"
	"github.com/binnev/lissajous-patterns/internal/gui"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/storage"
	"github.com/binnev/lissajous-patterns/internal/trajectory"
	"github.com/binnev/lissajous-patterns/internal/tui"
)

func runGUI(cmd *cobra.Command, args []string) error {
	_, s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var player *audio.Player
	if sound {
		player, err = audio.Start(audio.NewVoice(pitch))
		if err != nil {
			return err
		}
		defer player.Stop()
	}
	return gui.Run(s, player)
}

func runTUI(cmd *cobra.Command, args []string) error {
	_, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func listen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	th := cfg.InitialThrow()
	path, err := trajectory.Compute(context.Background(), cfg.Request(th))
	if err != nil {
		return err
	}

	v := audio.NewVoice(pitch)
	player, err := audio.Start(v)
	if err != nil {
		return err
	}
	defer player.Stop()

	pend := cfg.Pendulum()
	v.SetThrow(path.Coefficients, &pend)
	fmt.Printf("playing at %.0f Hz, time scale %.1fx\n", pitch, v.TimeScale())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	if listenFor > 0 {
		select {
		case <-time.After(listenFor):
		case <-sig:
		}
		return nil
	}

	fmt.Println("press enter to stop")
	done := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(done)
	}()
	select {
	case <-done:
	case <-sig:
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	save := func(name string, fig *session.Figure) ([]string, error) {
		return export.SaveFigure(name, fig, export.DefaultSize)
	}
	rep, err := automation.RunScenario(ctx, sc, base, save, sessionOptions()...)
	if rep == nil {
		return err
	}

	fmt.Printf("scenario %s: %d throws\n", sc.Name, len(rep.Throws))
	for i, th := range rep.Throws {
		t := th.Throw
		fmt.Printf("  %d: (%.3f, %.3f) v = (%.3f, %.3f), %d samples, %d warnings\n",
			i+1, t.X0, t.Y0, t.VX0, t.VY0, th.Path.Len(), len(th.Warnings))
	}
	for _, p := range rep.Saved {
		fmt.Printf("saved %s\n", p)
	}
	if err != nil {
		return err
	}

	if storeRuns && len(rep.Throws) > 0 {
		cfg, err := sc.Configure(base)
		if err != nil {
			return err
		}
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, th := range rep.Throws {
			id, err := st.Save(cfg, th.Throw, th.Path)
			if err != nil {
				return err
			}
			fmt.Printf("stored %s\n", id)
		}
	}
	return nil
}
