package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Meter draws a labelled score bar. Max defaults to 100; dimension
// scores pass 20. Color picks the fill and falls back to the accent.
type Meter struct {
	Label string
	Score float64
	Max   float64
	Color lipgloss.Color
}

func (m Meter) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	limit := m.Max
	if limit <= 0 {
		limit = 100
	}
	score := m.Score
	if score < 0 {
		score = 0
	}
	if score > limit {
		score = limit
	}
	color := m.Color
	if color == "" {
		color = "#cba6f7"
	}

	span := max(4, width-24)
	filled := int(score / limit * float64(span))
	if filled > span {
		filled = span
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a")).Render(strings.Repeat("░", span-filled))
	return fmt.Sprintf("%-14s %s %5.1f", m.Label, bar, score)
}
