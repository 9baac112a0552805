package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#cba6f7"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
)

// ScoreColor buckets a 0..100 overall score for display.
func ScoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 75:
		return colorSuccess
	case score >= 50:
		return colorWarn
	default:
		return colorError
	}
}
