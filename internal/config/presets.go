package config

import "sort"

// Preset picks the lower length so that √(l/L) equals Num/Den.
type Preset struct {
	Num, Den    int
	Description string
	Throw       ThrowConfig
}

var Presets = map[string]Preset{
	"unison": {Num: 1, Den: 1, Description: "1:1 ellipse",
		Throw: ThrowConfig{X0: 0.5, Y0: 0.5, VY0: 1.0}},
	"octave": {Num: 1, Den: 2, Description: "1:2 figure of eight",
		Throw: ThrowConfig{X0: 0.5, Y0: 0.0, VY0: 1.2}},
	"fifth": {Num: 2, Den: 3, Description: "2:3 pretzel",
		Throw: ThrowConfig{X0: 0.5, Y0: 0.3, VY0: 0.8}},
	"fourth": {Num: 3, Den: 4, Description: "3:4 knot",
		Throw: ThrowConfig{X0: 0.5, Y0: 0.3, VY0: 0.8}},
	"sixth": {Num: 3, Den: 5, Description: "3:5 lattice",
		Throw: ThrowConfig{X0: 0.4, Y0: 0.2, VX0: 0.3, VY0: 0.8}},
	"third": {Num: 4, Den: 5, Description: "4:5 default weave",
		Throw: ThrowConfig{X0: 0.5, Y0: 0.3, VY0: 0.8}},
}

// LengthY returns the lower length for a total length lx.
func (p Preset) LengthY(lx float64) float64 {
	r := float64(p.Num) / float64(p.Den)
	return lx * r * r
}

// GetPreset returns a copy of base with the preset applied, or nil when the
// preset does not exist.
func GetPreset(base *Config, name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := base.Clone()
	cfg.LengthY = p.LengthY(cfg.LengthX)
	cfg.Throw = p.Throw
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
