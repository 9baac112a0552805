package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarPoint is one labelled bar.
type BarPoint struct {
	Label string
	Value float64
}

// BarChart draws horizontal bars scaled against the largest value.
type BarChart struct {
	Title  string
	Points []BarPoint
	Unit   string
}

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
	lines := []string{titleStyle.Render(c.Title)}
	if len(c.Points) == 0 {
		return lines[0] + "\n(no data)"
	}

	peak := 0.0
	labelW := 0
	for _, p := range c.Points {
		if p.Value > peak {
			peak = p.Value
		}
		if len(p.Label) > labelW {
			labelW = len(p.Label)
		}
	}
	if peak <= 0 {
		peak = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	span := max(1, width-labelW-10)
	for _, p := range c.Points {
		cells := int(p.Value / peak * float64(span))
		if cells < 1 && p.Value > 0 {
			cells = 1
		}
		value := strings.TrimSpace(fmt.Sprintf("%.0f %s", p.Value, c.Unit))
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			labelW, p.Label, barStyle.Render(strings.Repeat("█", cells)), valueStyle.Render(value)))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}
