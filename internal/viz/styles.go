package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(12)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// GradientText colors each rune of text along a Lab blend from start to end.
// Colors that fail to parse fall back to white.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start := parseColor(startColor)
	end := parseColor(endColor)

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		col := lipgloss.Color(start.BlendLab(end, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(c)))
	}

	return result.String()
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent >= 1 {
		return SparkHigh.Render(bar)
	} else if percent > 0.5 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

func parseColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

// shade picks the theme style for a cell level.
func shade(t Theme, level float64) lipgloss.Style {
	switch {
	case level >= particleLevel:
		return lipgloss.NewStyle().Foreground(t.Primary)
	case level >= edgeLevel:
		return lipgloss.NewStyle().Foreground(t.Secondary)
	default:
		return lipgloss.NewStyle().Foreground(t.Muted)
	}
}

func band(level float64) int {
	switch {
	case level >= particleLevel:
		return 2
	case level >= edgeLevel:
		return 1
	}
	return 0
}

// RenderCanvas renders c with each run of same-shade cells in one style.
func RenderCanvas(c *Canvas, t Theme) string {
	styles := [3]lipgloss.Style{shade(t, 0), shade(t, edgeLevel), shade(t, particleLevel)}

	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		col := 0
		for col < c.Width {
			if c.Grid[row][col] == blank {
				start := col
				for col < c.Width && c.Grid[row][col] == blank {
					col++
				}
				b.WriteString(string(c.Grid[row][start:col]))
				continue
			}
			k := band(c.Level[row][col])
			start := col
			for col < c.Width && c.Grid[row][col] != blank && band(c.Level[row][col]) == k {
				col++
			}
			b.WriteString(styles[k].Render(string(c.Grid[row][start:col])))
		}
		b.WriteString("\n")
	}
	return b.String()
}
