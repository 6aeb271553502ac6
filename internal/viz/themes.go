package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/palette"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color // particles
	Secondary  lipgloss.Color // strong edges
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color // faint edges
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// fromPalette builds a theme from a variant's display colors.
func fromPalette(name, variant string, hue float64) Theme {
	p := palette.For(variant)
	return Theme{
		Name:       name,
		Primary:    lipgloss.Color(p.Particle(hue).Hex()),
		Secondary:  lipgloss.Color(p.Edge.Hex()),
		Accent:     lipgloss.Color("#ffd27f"),
		Background: lipgloss.Color(p.Background.Hex()),
		Text:       lipgloss.Color("#e6f0ff"),
		Muted:      lipgloss.Color(p.Edge.BlendLab(p.Background, 0.55).Clamped().Hex()),
		Success:    lipgloss.Color("#5fd7a7"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff5f5f"),
	}
}

// Available themes
var (
	ThemeNight = fromPalette("night", config.VariantInteractive, 205)
	ThemeDusk  = fromPalette("dusk", config.VariantHero, 212)

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#bbbbbb"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#555555"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#88ff88"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#feca57"),
		Secondary:  lipgloss.Color("#ff6b6b"), // Coral
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}

	// Default theme
	CurrentTheme = ThemeNight

	// All available themes
	Themes = []Theme{
		ThemeNight,
		ThemeDusk,
		ThemeMinimal,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or night when the name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after current in Themes, wrapping around.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
