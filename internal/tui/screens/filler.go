package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

const fillerChartMax = 8

// FillerWords breaks the filler analysis out of the feedback summary.
type FillerWords struct {
	deps *Deps
}

func NewFillerWords(deps *Deps) *FillerWords {
	return &FillerWords{deps: deps}
}

func (f *FillerWords) Title() string { return "Filler words" }

func (f *FillerWords) Init() tea.Cmd { return nil }

func (f *FillerWords) Update(tea.Msg) tea.Cmd { return nil }

func (f *FillerWords) View(width, height int) string {
	session := f.deps.Session.Get()
	if !session.HasResult() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			tui.SubtitleStyle.Render("No analysis to break down."))
	}
	filler := session.Result.Filler

	if filler.TotalFillerWords == 0 {
		body := lipgloss.JoinVertical(lipgloss.Center,
			tui.SuccessStyle.Bold(true).Render("No filler words detected."),
			"",
			tui.SubtitleStyle.Render("Clean delivery on this take."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	points := make([]widgets.BarPoint, 0, fillerChartMax)
	for _, word := range analysis.TopFillers(filler.Counts) {
		points = append(points, widgets.BarPoint{Label: word, Value: float64(filler.Counts[word])})
		if len(points) == fillerChartMax {
			break
		}
	}
	chart := widgets.BarChart{Title: "Most frequent", Points: points, Unit: "×"}

	body := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("Filler words"),
		"",
		factLine("Total", fmt.Sprintf("%d", filler.TotalFillerWords)),
		factLine("Per minute", fmt.Sprintf("%.1f", filler.FillerPerMinute)),
		factLine("Density", fmt.Sprintf("%.1f%% of all words", filler.FillerDensity*100)),
		"",
		chart.Render(maxInt(30, width/2), maxInt(4, len(points)+1)),
		"",
		tui.HintStyle.Render("esc back to feedback"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
