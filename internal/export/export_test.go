package export

import (
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/physics"
	"github.com/binnev/lissajous-patterns/internal/session"
	"github.com/binnev/lissajous-patterns/internal/viz"
)

func thrownFigure(t *testing.T, showRatio bool) *session.Figure {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ShowRatio = showRatio
	s, err := session.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Press(session.Event{Button: session.ButtonLeft, X: 0.2, Y: 0.1, InAxes: true})
	if _, err := s.Release(context.Background(), session.Event{Button: session.ButtonLeft, X: 0.3, Y: 0.3, InAxes: true}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	return s.Figure()
}

func TestFigureToSVG(t *testing.T) {
	svg := FigureToSVG(thrownFigure(t, true), 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a complete SVG document")
	}
	if !strings.Contains(svg, `width="400"`) {
		t.Error("size not applied")
	}
	if n := strings.Count(svg, "<polygon"); n != 1 {
		t.Errorf("expected one arrow, got %d", n)
	}
	if !strings.Contains(svg, viz.Firebrick.Hex()) {
		t.Error("arrow colour missing")
	}
	// 2 markers + 20 revealed trail points
	if n := strings.Count(svg, "<circle"); n != 22 {
		t.Errorf("expected 22 circles, got %d", n)
	}
	// 4 axis lines and ticks + 166 path segments
	if n := strings.Count(svg, "<line"); n != 6+166 {
		t.Errorf("expected %d lines, got %d", 6+166, n)
	}
	if !strings.Contains(svg, "√(l/L) = 4/5 = 0.8") {
		t.Error("ratio label missing")
	}
}

func TestFigureToSVGEmpty(t *testing.T) {
	svg := FigureToSVG(session.NewFigure(), 200)
	if strings.Contains(svg, "<circle") || strings.Contains(svg, "<polygon") {
		t.Error("empty figure should only have axes")
	}
	if strings.Count(svg, "<text") != 4 {
		t.Errorf("expected 4 tick labels, got %d", strings.Count(svg, "<text"))
	}
}

func TestRenderFigure(t *testing.T) {
	fig := session.NewFigure()
	fig.Add(&session.Marker{At: physics.Point{X: -0.5, Y: -0.5}, Color: viz.Black})
	fig.Add(&session.Arrow{From: physics.Point{X: 0.5, Y: -0.5}, To: physics.Point{X: 0.5, Y: 0.5}, Width: 0.02, Color: viz.Firebrick})
	fig.Add(&session.Scatter{
		Points:  []physics.Point{{X: -0.5, Y: 0.5}, {X: 0.9, Y: 0.9}},
		Colors:  []colorful.Color{viz.Gray, viz.Gray},
		Visible: 1,
	})

	img := RenderFigure(fig, 300)
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 300 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if c := img.RGBAAt(2, 2); c != white {
		t.Errorf("background should be white, got %v", c)
	}

	vp := figureViewport(fig, 300)
	tests := []struct {
		name string
		x, y float64
		want color.RGBA
	}{
		{"marker", -0.5, -0.5, toRGBA(viz.Black)},
		{"arrow shaft", 0.5, 0, toRGBA(viz.Firebrick)},
		{"revealed point", -0.5, 0.5, toRGBA(viz.Gray)},
		{"hidden point", 0.9, 0.9, white},
	}
	for _, tt := range tests {
		x, y := vp.Cell(tt.x, tt.y)
		if c := img.RGBAAt(x, y); c != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, c)
		}
	}
}

func TestSaveFigure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "output")
	paths, err := SaveFigure(base, thrownFigure(t, true), 0)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected png and svg, got %v", paths)
	}

	f, err := os.Open(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != DefaultSize {
		t.Errorf("expected default size %d, got %d", DefaultSize, img.Bounds().Dx())
	}

	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Errorf("svg missing: %v", err)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.SetColor(3, 3, viz.Firebrick)

	svg := CanvasToSVG(c, 2, viz.Black, viz.White)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, viz.Firebrick.Hex()) || !strings.Contains(svg, viz.White.Hex()) {
		t.Error("dot colours missing")
	}
	if CanvasToSVG(nil, 1, viz.Black, viz.White) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestPathToSVG(t *testing.T) {
	pts := []physics.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := PathToSVG(pts, 100, 50)
	if n := strings.Count(svg, "<line"); n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
	if PathToSVG(pts[:1], 100, 50) != "" {
		t.Error("single point should give empty output")
	}
}
