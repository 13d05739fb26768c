package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/session"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	s, err := session.New(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return newModel(s, nil)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col + originCol, Y: row + originRow, Action: action, Button: tea.MouseButtonLeft}
}

func TestMouseThrow(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 20, 10))
	if _, ok := m.s.Pressed(); !ok {
		t.Fatal("press inside the plot should register")
	}
	m, cmd := update(t, m, mouse(tea.MouseActionRelease, 24, 8))
	if cmd == nil {
		t.Fatal("release should schedule the animation")
	}
	th := m.s.Last()
	if th == nil {
		t.Fatal("release should throw")
	}
	if th.Throw.VX0 <= 0 || th.Throw.VY0 <= 0 {
		t.Errorf("dragging right and up should give positive velocity, got %+v", th.Throw)
	}

	m, cmd = update(t, m, tickMsg{gen: m.gen})
	if cmd == nil {
		t.Error("animation should keep ticking")
	}
	var sc *session.Scatter
	for _, a := range m.s.Figure().Artists {
		if s, ok := a.(*session.Scatter); ok {
			sc = s
		}
	}
	if sc == nil || sc.Visible != 1 {
		t.Fatalf("one tick should reveal one point, got %+v", sc)
	}

	_, cmd = update(t, m, tickMsg{gen: m.gen - 1})
	if cmd != nil || sc.Visible != 1 {
		t.Error("stale ticks should be ignored")
	}
}

func TestMouseOutsidePlot(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, mouse(tea.MouseActionPress, 0, 10))
	if _, ok := m.s.Pressed(); ok {
		t.Error("press left of the plot should be ignored")
	}
	m, cmd := update(t, m, mouse(tea.MouseActionRelease, 20, 10))
	if cmd != nil || m.s.Last() != nil || m.err != nil {
		t.Error("release without a press should do nothing")
	}
}

func TestEditParams(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("enter"))
	if !m.form.Editing() || m.form.Text(m.form.Cursor()) != "1" {
		t.Fatalf("expected editing of L, buffer %q", m.form.Text(m.form.Cursor()))
	}
	m, _ = update(t, m, key("backspace"))
	for _, r := range "0.8" {
		m, _ = update(t, m, key(string(r)))
	}
	m, _ = update(t, m, key("enter"))
	if got := m.s.Params().LengthX; got != 0.8 {
		t.Errorf("L = %v, want 0.8", got)
	}

	m, _ = update(t, m, key("enter"))
	m, _ = update(t, m, key("backspace"))
	m, _ = update(t, m, key("backspace"))
	m, _ = update(t, m, key("backspace"))
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("1"))
	m, _ = update(t, m, key("enter"))
	if m.err == nil {
		t.Error("negative length should be rejected")
	}
	if got := m.s.Params().LengthX; got != 0.8 {
		t.Errorf("rejected edit changed L to %v", got)
	}

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("right"))
	if got := m.s.Params().TMax; got != 5.5 {
		t.Errorf("t_max = %v, want 5.5", got)
	}
	if m.err != nil {
		t.Errorf("valid adjust left an error: %v", m.err)
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	var saved string
	m.save = func(base string, fig *session.Figure) ([]string, error) {
		saved = base
		return []string{base + ".png"}, nil
	}

	if !strings.Contains(m.View(), "[x] predict path") {
		t.Error("predict path should start checked")
	}
	m, _ = update(t, m, key("p"))
	m, _ = update(t, m, key("r"))
	view := m.View()
	if !strings.Contains(view, "[ ] predict path") || !strings.Contains(view, "[x] show ratio") {
		t.Error("toggles should show in the panel")
	}

	m, _ = update(t, m, key("s"))
	if saved != "output" || !strings.Contains(m.status, "output.png") {
		t.Errorf("save wrote %q, status %q", saved, m.status)
	}

	m, _ = update(t, m, mouse(tea.MouseActionPress, 20, 10))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 20, 10))
	if m.s.Figure().Len() == 0 {
		t.Fatal("throw should draw")
	}
	var snapName, snap string
	m.writeFile = func(name string, data []byte) error {
		snapName, snap = name, string(data)
		return nil
	}
	m, _ = update(t, m, key("S"))
	if snapName != "output-terminal.svg" || !strings.Contains(m.status, snapName) {
		t.Errorf("snapshot wrote %q, status %q", snapName, m.status)
	}
	if !strings.Contains(snap, "<svg") || !strings.Contains(snap, "<circle") {
		t.Errorf("snapshot should be an svg of the plotted dots, got %.60q", snap)
	}

	m, _ = update(t, m, key("c"))
	if m.s.Figure().Len() != 0 || m.s.Animating() {
		t.Error("clear should empty the figure")
	}

	first := m.theme.Name
	m, _ = update(t, m, key("t"))
	if m.theme.Name == first {
		t.Error("t should switch theme")
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestDrawFigure(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.canvas.Width != 62 || m.canvas.Height != 26 {
		t.Fatalf("canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m.s.ToggleShowRatio()
	m, _ = update(t, m, mouse(tea.MouseActionPress, 30, 12))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 34, 10))
	drawFigure(m.canvas, m.vp, m.s.Figure(), m.theme)

	out := m.canvas.String()
	if !strings.Contains(out, "√(l/L) = 4/5 = 0.8") {
		t.Error("ratio label should be drawn")
	}
	x, y := m.vp.Cell(0, 0)
	if !m.canvas.Dot(x, y) {
		t.Error("axes should cross at the origin")
	}
}
