package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the terminal colour scheme. Marker replaces black figure
// ink, which would vanish on a dark terminal.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Axes      lipgloss.Color
	Marker    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeInferno = Theme{
		Name:      "inferno",
		Primary:   lipgloss.Color("#fca50a"),
		Secondary: lipgloss.Color("#dd513a"),
		Accent:    lipgloss.Color("#fcffa4"),
		Axes:      lipgloss.Color("#666666"),
		Marker:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemePaper = Theme{
		Name:      "paper",
		Primary:   lipgloss.Color("#000000"),
		Secondary: lipgloss.Color("#444444"),
		Accent:    lipgloss.Color("#b22222"),
		Axes:      lipgloss.Color("#000000"),
		Marker:    lipgloss.Color("#000000"),
		Text:      lipgloss.Color("#000000"),
		Muted:     lipgloss.Color("#808080"),
		Success:   lipgloss.Color("#008800"),
		Warning:   lipgloss.Color("#aa6600"),
		Error:     lipgloss.Color("#cc0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Axes:      lipgloss.Color("#005500"),
		Marker:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Axes:      lipgloss.Color("#4488aa"),
		Marker:    lipgloss.Color("#e0f0ff"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeInferno

	Themes = []Theme{
		ThemeInferno,
		ThemePaper,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to inferno.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeInferno
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
