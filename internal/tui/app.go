// Package tui is the terminal front end: a braille plot driven by the
// mouse, with the parameter panel beside it.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/binnev/lissajous-patterns/internal/export"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
	"github.com/binnev/lissajous-patterns/internal/widgets"
)

const (
	panelWidth = 36
	// The plot starts below the title and separator lines.
	originRow = 2
	originCol = 0
)

type tickMsg struct{ gen int }

type SaveFunc func(base string, fig *session.Figure) ([]string, error)

type model struct {
	s      *session.Session
	theme  viz.Theme
	save   SaveFunc
	output string

	// writeFile stores the terminal snapshot.
	writeFile func(name string, data []byte) error

	canvas *viz.Canvas
	vp     *viz.Viewport

	form *widgets.Form

	gen    int
	status string
	err    error

	width, height int
}

func newModel(s *session.Session, save SaveFunc) model {
	cfg := s.Config()
	if save == nil {
		save = func(base string, fig *session.Figure) ([]string, error) {
			return export.SaveFigure(base, fig, export.DefaultSize)
		}
	}
	m := model{
		s:         s,
		theme:     viz.GetTheme(cfg.Theme),
		save:      save,
		output:    cfg.Output,
		form:      widgets.NewForm(s),
		writeFile: writeFile,
	}
	m.resize(80, 24)
	return m
}

func writeFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(w-panelWidth-2, 20)
	ch := max(h-originRow-2, 10)
	m.canvas = viz.NewCanvas(cw, ch)
	m.vp = viz.ForCanvas(m.canvas)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.s.Interval(), func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.form.Editing() {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.s.Tick() {
			return m, m.tick()
		}
		return m, nil
	}
	return m, nil
}

func (m model) event(msg tea.MouseMsg) session.Event {
	ev := session.Event{}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = session.ButtonLeft
	case tea.MouseButtonMiddle:
		ev.Button = session.ButtonMiddle
	case tea.MouseButtonRight:
		ev.Button = session.ButtonRight
	}
	ev.X, ev.Y, ev.InAxes = m.vp.CellToWorld(msg.X-originCol, msg.Y-originRow)
	return ev
}

func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if m.s.Press(m.event(msg)) {
			m.gen++
			m.err = nil
		}
	case tea.MouseActionRelease:
		if _, pressed := m.s.Pressed(); !pressed {
			return m, nil
		}
		ev := m.event(msg)
		// Terminals report which button went up only sometimes.
		ev.Button = session.ButtonLeft
		th, err := m.s.Release(context.Background(), ev)
		if err != nil {
			m.err = err
			return m, nil
		}
		if th == nil {
			m.status = "released outside the axes"
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("throw v=(%.2f, %.2f) m/s", th.Throw.VX0, th.Throw.VY0)
		m.gen++
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.form.Up()
	case "down", "j":
		m.form.Down()
	case "left", "h":
		m.err = m.form.Adjust(-1)
	case "right", "l":
		m.err = m.form.Adjust(1)
	case "enter":
		m.form.Begin()
	case "p":
		m.s.TogglePredictPath()
	case "r":
		m.s.ToggleShowRatio()
	case "c":
		m.s.Clear()
		m.gen++
		m.status = "cleared"
	case "s":
		paths, err := m.save(m.output, m.s.Figure())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = "saved " + strings.Join(paths, ", ")
	case "S":
		drawFigure(m.canvas, m.vp, m.s.Figure(), m.theme)
		name := m.output + "-terminal.svg"
		svg := export.CanvasToSVG(m.canvas, 4, viz.White, viz.Black)
		if err := m.writeFile(name, []byte(svg)); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "saved " + name
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.err = m.form.Commit()
	case tea.KeyEsc:
		m.form.Cancel()
	case tea.KeyBackspace:
		m.form.Backspace()
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.form.Type(r)
		}
	}
	return m, nil
}

func (m model) View() string {
	drawFigure(m.canvas, m.vp, m.s.Figure(), m.theme)

	title := viz.GradientText("lissajous patterns", m.theme.Accent, m.theme.Secondary)
	header := title + "\n" + viz.Separator(m.canvas.Width)
	plot := header + "\n" + m.canvas.Render(m.theme.Text)

	return lipgloss.JoinHorizontal(lipgloss.Top, plot, m.viewPanel())
}

func (m model) viewPanel() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render("parameters") + "\n")
	for i, f := range widgets.Fields {
		val := m.form.Text(i)
		if m.form.Editing() && i == m.form.Cursor() {
			val += "▋"
		}
		if i == m.form.Cursor() {
			b.WriteString(viz.Selected.Render(fmt.Sprintf("▸ %-22s %s", f.Name, val)) + "\n")
		} else {
			b.WriteString("  " + viz.MetricLabel.Render(f.Name) + " " + viz.MetricValue.Render(val) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(viz.Checkbox("predict path", m.s.PredictPath()) + "\n")
	b.WriteString(viz.Checkbox("show ratio", m.s.ShowRatio()) + "\n\n")

	if th := m.s.Last(); th != nil {
		c := th.Path.Coefficients
		tx, ty := c.Periods()
		b.WriteString(viz.MetricLabel.Render("periods") + viz.MetricValue.Render(fmt.Sprintf("%.2fs %.2fs", tx, ty)) + "\n")
		b.WriteString(viz.MetricLabel.Render("amplitudes") + viz.MetricValue.Render(fmt.Sprintf("%.3f %.3f", c.AmpX, c.AmpY)) + "\n")
		if n := len(th.Warnings); n > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Warning).Render(fmt.Sprintf("%d amplitude warning(s)", n)) + "\n")
		}
		if th.Path.Len() > 1 {
			xs := make([]float64, th.Path.Len())
			for i, pt := range th.Path.Points {
				xs[i] = pt.X
			}
			chart := asciigraph.Plot(xs, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption("x(t)"))
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Primary).Render(chart) + "\n")
		}
	}

	switch {
	case m.err != nil:
		b.WriteString(viz.StatusError.Render(m.err.Error()) + "\n")
	case m.s.Animating():
		b.WriteString(viz.StatusRunning.Render("● drawing") + "\n")
	case m.status != "":
		b.WriteString(viz.StatusIdle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + viz.KeyHint.Render("drag on the plot to throw") + "\n")
	b.WriteString(viz.KeyHint.Render("↑↓ field ←→ adjust enter type") + "\n")
	b.WriteString(viz.KeyHint.Render("p path r ratio c clear s save S svg") + "\n")
	b.WriteString(viz.KeyHint.Render("t theme q quit") + "\n")

	return viz.Panel.Width(panelWidth).Render(b.String())
}

// Run starts the terminal front end on s.
func Run(s *session.Session) error {
	p := tea.NewProgram(newModel(s, nil), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
