// Package gui is the windowed front end: the plot on the left, the
// parameter panel, check boxes and buttons on the right.
package gui

import (
	"context"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/binnev/lissajous-patterns/internal/audio"
	"github.com/binnev/lissajous-patterns/internal/export"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/widgets"
)

const (
	windowWidth  = 960
	windowHeight = 640
)

var (
	ColBg      = rl.NewColor(255, 255, 255, 255)
	ColPanel   = rl.NewColor(240, 240, 240, 255)
	ColAxes    = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(30, 30, 30, 255)
	ColTextDim = rl.NewColor(120, 120, 120, 255)
	ColSelect  = rl.NewColor(178, 34, 34, 255)
	ColButton  = rl.NewColor(220, 220, 220, 255)
)

type App struct {
	S      *session.Session
	Form   *widgets.Form
	Layout *widgets.Layout
	Font   rl.Font
	Player *audio.Player

	output  string
	elapsed float32
	status  string
	err     error
	closing bool
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "lissajous patterns")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(s *session.Session, player *audio.Player) *App {
	fig := s.Figure()
	return &App{
		S:      s,
		Form:   widgets.NewForm(s),
		Layout: widgets.NewLayout(windowWidth, windowHeight, fig.XMin, fig.XMax, fig.YMin, fig.YMax),
		Font:   rl.GetFontDefault(),
		Player: player,
		output: s.Config().Output,
	}
}

// Run opens the window and blocks until it is closed. player may be nil.
func Run(s *session.Session, player *audio.Player) error {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(s, player)
	app.RunLoop()
	return app.err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.closing {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.handleKeys()
	a.handleMouse()

	// Advance the trail at d_time per point, independent of the frame rate.
	if a.S.Animating() {
		a.elapsed += rl.GetFrameTime()
		interval := float32(a.S.Interval().Seconds())
		for a.elapsed >= interval && a.S.Tick() {
			a.elapsed -= interval
		}
	} else {
		a.elapsed = 0
	}
}

func (a *App) handleKeys() {
	f := a.Form
	if f.Editing() {
		for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
			f.Type(rune(r))
		}
		switch {
		case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyKpEnter):
			a.err = f.Commit()
		case rl.IsKeyPressed(rl.KeyEscape):
			f.Cancel()
		case rl.IsKeyPressed(rl.KeyBackspace):
			f.Backspace()
		}
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.closing = true
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyJ):
		f.Down()
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyK):
		f.Up()
	case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressed(rl.KeyL):
		a.err = f.Adjust(a.stepScale())
	case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressed(rl.KeyH):
		a.err = f.Adjust(-a.stepScale())
	case rl.IsKeyPressed(rl.KeyEnter):
		f.Begin()
	case rl.IsKeyPressed(rl.KeyP):
		a.S.TogglePredictPath()
	case rl.IsKeyPressed(rl.KeyR):
		a.S.ToggleShowRatio()
	case rl.IsKeyPressed(rl.KeyC):
		a.clear()
	case rl.IsKeyPressed(rl.KeyS):
		a.save()
	}
}

func (a *App) stepScale() float64 {
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		return 10
	}
	return 1
}

func button(b rl.MouseButton) session.Button {
	switch b {
	case rl.MouseLeftButton:
		return session.ButtonLeft
	case rl.MouseMiddleButton:
		return session.ButtonMiddle
	case rl.MouseRightButton:
		return session.ButtonRight
	}
	return session.ButtonNone
}

func (a *App) event(b rl.MouseButton) session.Event {
	pos := rl.GetMousePosition()
	x, y, ok := a.Layout.Plot.ToWorld(float64(pos.X), float64(pos.Y))
	return session.Event{Button: button(b), X: x, Y: y, InAxes: ok}
}

func (a *App) handleMouse() {
	for _, b := range []rl.MouseButton{rl.MouseLeftButton, rl.MouseMiddleButton, rl.MouseRightButton} {
		if rl.IsMouseButtonPressed(b) {
			a.press(b)
		}
	}
	if _, pressed := a.S.Pressed(); pressed && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.release()
	}
}

func (a *App) press(b rl.MouseButton) {
	pos := rl.GetMousePosition()
	ctl, i := a.Layout.Hit(float64(pos.X), float64(pos.Y))
	if b != rl.MouseLeftButton && ctl != widgets.Plot {
		return
	}
	switch ctl {
	case widgets.Plot:
		if a.S.Press(a.event(b)) {
			a.err = nil
		}
	case widgets.FieldControl:
		a.Form.Select(i)
		a.Form.Begin()
	case widgets.PredictBox:
		a.S.TogglePredictPath()
	case widgets.RatioBox:
		a.S.ToggleShowRatio()
	case widgets.ClearButton:
		a.clear()
	case widgets.SaveButton:
		a.save()
	case widgets.CloseButton:
		a.closing = true
	}
}

func (a *App) release() {
	th, err := a.S.Release(context.Background(), a.event(rl.MouseLeftButton))
	if err != nil {
		a.err = err
		return
	}
	if th == nil {
		a.status = "released outside the axes"
		return
	}
	a.err = nil
	a.elapsed = 0
	a.status = fmt.Sprintf("throw v = (%.2f, %.2f) m/s", th.Throw.VX0, th.Throw.VY0)
	if a.Player != nil {
		pend := a.S.Config().Pendulum()
		a.Player.Voice().SetThrow(th.Path.Coefficients, &pend)
	}
}

func (a *App) clear() {
	a.S.Clear()
	a.status = "cleared"
	if a.Player != nil {
		a.Player.Voice().Silence()
	}
}

func (a *App) save() {
	paths, err := export.SaveFigure(a.output, a.S.Figure(), export.DefaultSize)
	if err != nil {
		a.err = err
		return
	}
	a.status = "saved " + strings.Join(paths, ", ")
}
