package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel draws a rounded box with the title embedded in the top border.
type Panel struct {
	Title   string
	Content string
	Accent  bool
}

func (p Panel) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := lipgloss.Color("#585b70")
	if p.Accent {
		border = lipgloss.Color("#cba6f7")
	}
	edge := lipgloss.NewStyle().Foreground(border)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)

	innerWidth := width - 2
	contentWidth := innerWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
		innerWidth = contentWidth + 2
	}

	top := edge.Render("╭" + strings.Repeat("─", innerWidth) + "╮")
	if strings.TrimSpace(p.Title) != "" {
		title := " " + p.Title + " "
		if ansi.StringWidth(title) > innerWidth-2 {
			title = " " + ansi.Truncate(p.Title, max(1, innerWidth-4), "") + " "
		}
		titleW := ansi.StringWidth(title)
		top = edge.Render("╭─") + label.Render(title) + edge.Render(strings.Repeat("─", max(0, innerWidth-titleW-1))+"╮")
	}

	side := edge.Render("│")
	lines := strings.Split(p.Content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		line = ansi.Truncate(line, contentWidth, "")
		rows = append(rows, side+" "+padRight(line, contentWidth)+" "+side)
	}
	rows = append(rows, edge.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}
