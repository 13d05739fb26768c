package widgets

import (
	"errors"
	"testing"

	"github.com/binnev/lissajous-patterns/internal/config"
	"github.com/binnev/lissajous-patterns/internal/dynamo"
	"github.com/binnev/lissajous-patterns/internal/session"
)

func newForm(t *testing.T) (*Form, *session.Session) {
	t.Helper()
	s, err := session.New(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return NewForm(s), s
}

func TestFormTyping(t *testing.T) {
	f, s := newForm(t)

	f.Down()
	f.Begin()
	if f.Text(f.Cursor()) != "0.64" {
		t.Fatalf("buffer = %q", f.Text(f.Cursor()))
	}
	f.Backspace()
	f.Backspace()
	f.Type('2')
	f.Type('5')
	f.Type('x')
	if f.Text(1) != "0.25" {
		t.Fatalf("text = %q", f.Text(1))
	}
	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}
	if s.Params().LengthY != 0.25 || f.Editing() {
		t.Errorf("commit should apply and stop editing: %+v", s.Params())
	}

	f.Begin()
	f.Cancel()
	if f.Editing() || s.Params().LengthY != 0.25 {
		t.Error("cancel should leave the value alone")
	}

	f.Begin()
	for range f.Text(f.Cursor()) {
		f.Backspace()
	}
	f.Type('.')
	if err := f.Commit(); err == nil {
		t.Error("a lone dot should not parse")
	}

	f.Begin()
	f.Type('-')
	f.Backspace()
	f.Backspace()
	f.Backspace()
	f.Backspace()
	f.Backspace()
	f.Type('0')
	err := f.Commit()
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("zero length should be out of bounds, got %v", err)
	}
	if s.Params().LengthY != 0.25 {
		t.Error("rejected value should not be applied")
	}
}

func TestFormAdjust(t *testing.T) {
	f, s := newForm(t)

	f.Up()
	if f.Cursor() != 0 {
		t.Fatal("cursor should stop at the first field")
	}
	for i := 0; i < 10; i++ {
		f.Down()
	}
	if f.Cursor() != f.Len()-1 || f.Selected().Name != "speed multiplier" {
		t.Fatalf("cursor should stop at the last field, got %d", f.Cursor())
	}
	if err := f.Adjust(1); err != nil {
		t.Fatal(err)
	}
	if s.Params().SpeedMultiplier != 4.5 {
		t.Errorf("speed = %v", s.Params().SpeedMultiplier)
	}

	f.Select(3)
	for i := 0; i < 6; i++ {
		f.Adjust(-1)
	}
	if got := s.Params().DTime; got <= 0 {
		t.Errorf("time increment went non-positive: %v", got)
	}

	f.Select(99)
	if f.Cursor() != 3 {
		t.Error("out of range select should be ignored")
	}
}

func TestLayoutHit(t *testing.T) {
	l := NewLayout(960, 640, -1, 1, -1, 1)

	tests := []struct {
		x, y  float64
		want  Control
		field int
	}{
		{700, 70, FieldControl, 0},
		{700, 100, FieldControl, 1},
		{700, 200, FieldControl, 4},
		{700, 250, PredictBox, 0},
		{700, 280, RatioBox, 0},
		{700, 320, ClearButton, 0},
		{800, 320, SaveButton, 0},
		{900, 320, CloseButton, 0},
		{335, 315, Plot, 0},
		{10, 10, None, 0},
	}
	for _, tt := range tests {
		got, i := l.Hit(tt.x, tt.y)
		if got != tt.want || i != tt.field {
			t.Errorf("Hit(%v, %v) = %v, %d; want %v, %d", tt.x, tt.y, got, i, tt.want, tt.field)
		}
	}

	x, y, ok := l.Plot.ToWorld(335, 315)
	if !ok || x != 0 || y != 0 {
		t.Errorf("plot centre maps to (%v, %v, %v)", x, y, ok)
	}
}
