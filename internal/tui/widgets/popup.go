package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderPopup centers a bordered card over base without dropping the rows
// around it.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#cba6f7")).
		Padding(1, 2).
		Render(popup)
	overlay := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	return composite(fitCanvas(base, width, height), fitCanvas(overlay, width, height), width, height)
}

func composite(base, overlay string, width, height int) string {
	baseLines := canvasLines(base, height)
	overlayLines := canvasLines(overlay, height)
	out := make([]string, height)
	for i := 0; i < height; i++ {
		baseLine := padRight(baseLines[i], width)
		overlayLine := padRight(overlayLines[i], width)
		start, end, ok := cardBounds(overlayLine, width)
		if !ok {
			out[i] = baseLine
			continue
		}
		left := ansi.Truncate(baseLine, start, "")
		card := ansi.Truncate(skipColumns(overlayLine, start), end-start, "")
		right := skipColumns(baseLine, end)
		out[i] = padRight(left+card+right, width)
	}
	return strings.Join(out, "\n")
}

// cardBounds finds the column span the card occupies on one overlay line.
func cardBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	for start < len(plain) && plain[start] == ' ' {
		start++
	}
	end = len(trimmed)
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func fitCanvas(s string, width, height int) string {
	lines := canvasLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func canvasLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func skipColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
