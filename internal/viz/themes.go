package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Series    []lipgloss.Color
}

var (
	ThemeHazard = Theme{
		Name:      "hazard",
		Primary:   lipgloss.Color("#ffd500"),
		Secondary: lipgloss.Color("#ff8800"),
		Accent:    lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Error:     lipgloss.Color("#ff4444"),
		Series: []lipgloss.Color{
			"#ffd500", "#00ffff", "#ff5fd7", "#87ff5f", "#ff8800", "#5f87ff",
		},
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Error:     lipgloss.Color("#ff0000"),
		Series:    []lipgloss.Color{"#00ff00", "#88ff88", "#00aa00", "#ccffcc"},
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Error:     lipgloss.Color("#ff4444"),
		Series:    []lipgloss.Color{"#00a8cc", "#ffd700", "#00ff88", "#e0f0ff", "#ff9ff3"},
	}

	Themes = []Theme{ThemeHazard, ThemeRetroGreen, ThemeOcean}
)

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) seriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return t.Primary
	}
	return t.Series[i%len(t.Series)]
}
