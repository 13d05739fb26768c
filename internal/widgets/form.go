// Package widgets holds the toolkit-independent parts of the parameter
// panel shared by the terminal and window front ends.
package widgets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/binnev/lissajous-patterns/internal/session"
)

// Field is one parameter entry.
type Field struct {
	Name string
	Step float64
	get  func(*session.Params) *float64
}

var Fields = []Field{
	{"total length L", 0.05, func(p *session.Params) *float64 { return &p.LengthX }},
	{"length of pendulum 2", 0.05, func(p *session.Params) *float64 { return &p.LengthY }},
	{"time to simulate", 0.5, func(p *session.Params) *float64 { return &p.TMax }},
	{"time increment", 0.005, func(p *session.Params) *float64 { return &p.DTime }},
	{"speed multiplier", 0.5, func(p *session.Params) *float64 { return &p.SpeedMultiplier }},
}

// Form edits the session parameters one field at a time. Values are
// applied through the session, so a rejected value leaves the old one in
// place.
type Form struct {
	s       *session.Session
	cursor  int
	editing bool
	buf     string
}

func NewForm(s *session.Session) *Form {
	return &Form{s: s}
}

func (f *Form) Cursor() int     { return f.cursor }
func (f *Form) Editing() bool   { return f.editing }
func (f *Form) Selected() Field { return Fields[f.cursor] }
func (f *Form) Len() int        { return len(Fields) }

func (f *Form) Up() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *Form) Down() {
	if f.cursor < len(Fields)-1 {
		f.cursor++
	}
}

// Select moves the cursor to field i, as a click on the field does.
func (f *Form) Select(i int) {
	if i >= 0 && i < len(Fields) {
		f.cursor = i
	}
}

// Value is field i's current value.
func (f *Form) Value(i int) float64 {
	p := f.s.Params()
	return *Fields[i].get(&p)
}

// Text is field i as shown in the panel.
func (f *Form) Text(i int) string {
	if f.editing && i == f.cursor {
		return f.buf
	}
	return strconv.FormatFloat(f.Value(i), 'g', 4, 64)
}

func (f *Form) Set(v float64) error {
	p := f.s.Params()
	*Fields[f.cursor].get(&p) = v
	return f.s.ApplyParams(p)
}

// Adjust steps the selected field by dir steps.
func (f *Form) Adjust(dir float64) error {
	field := Fields[f.cursor]
	return f.Set(f.Value(f.cursor) + dir*field.Step)
}

// Begin starts typing into the selected field, seeded with its value.
func (f *Form) Begin() {
	f.editing = true
	f.buf = strconv.FormatFloat(f.Value(f.cursor), 'g', -1, 64)
}

// Type appends r when it can be part of a number.
func (f *Form) Type(r rune) {
	if f.editing && strings.ContainsRune("0123456789.-+eE", r) {
		f.buf += string(r)
	}
}

func (f *Form) Backspace() {
	if n := len(f.buf); f.editing && n > 0 {
		f.buf = f.buf[:n-1]
	}
}

func (f *Form) Cancel() {
	f.editing = false
	f.buf = ""
}

// Commit parses the buffer and applies it.
func (f *Form) Commit() error {
	if !f.editing {
		return nil
	}
	text := strings.TrimSpace(f.buf)
	f.Cancel()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", Fields[f.cursor].Name, text)
	}
	return f.Set(v)
}
