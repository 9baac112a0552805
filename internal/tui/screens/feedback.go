package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

// Feedback shows the scored analysis for the session in the practice
// container, fresh take and history review alike.
type Feedback struct {
	deps *Deps
}

func NewFeedback(deps *Deps) *Feedback {
	return &Feedback{deps: deps}
}

func (f *Feedback) Title() string { return "Feedback" }

func (f *Feedback) Init() tea.Cmd { return nil }

func (f *Feedback) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "f":
		return f.deps.push(tui.RouteFillerWords)
	case "v":
		return f.deps.push(tui.RouteAdvancedAnalysis)
	case "enter":
		return f.done()
	}
	return nil
}

// done unwinds the stack back to the dashboard in one go, however deep
// the analysis detour went.
func (f *Feedback) done() tea.Cmd {
	router := f.deps.Router
	for router.CurrentRoute() != tui.RouteHome && !router.AtFloor() {
		if err := router.Pop(); err != nil {
			break
		}
	}
	return tui.StatusCmd("Session complete")
}

func (f *Feedback) View(width, height int) string {
	session := f.deps.Session.Get()
	if !session.HasResult() {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			tui.TitleStyle.Render("No analysis yet"),
			"",
			tui.SubtitleStyle.Render("Record a take and run the analyzer first."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}
	res := session.Result

	header := tui.TitleStyle.Render(session.Topic)
	if session.Review {
		header = tui.TitleStyle.Render(session.Topic) + tui.SubtitleStyle.Render("  (from history)")
	}

	scoreStyle := lipgloss.NewStyle().Foreground(tui.ScoreColor(res.OverallScore)).Bold(true)
	overall := scoreStyle.Render(fmt.Sprintf("%.1f", res.OverallScore)) + tui.SubtitleStyle.Render(" / 100")

	meterW := maxInt(40, width-8)
	meters := []widgets.Widget{
		widgets.Meter{Label: "Proficiency", Score: res.Scores.Proficiency, Max: 20, Color: tui.ScoreColor(res.Scores.Proficiency * 5)},
		widgets.Meter{Label: "Modulation", Score: res.Scores.VoiceModulation, Max: 20, Color: tui.ScoreColor(res.Scores.VoiceModulation * 5)},
		widgets.Meter{Label: "Development", Score: res.Scores.SpeechDevelopment, Max: 20, Color: tui.ScoreColor(res.Scores.SpeechDevelopment * 5)},
		widgets.Meter{Label: "Effectiveness", Score: res.Scores.SpeechEffectiveness, Max: 20, Color: tui.ScoreColor(res.Scores.SpeechEffectiveness * 5)},
		widgets.Meter{Label: "Vocabulary", Score: res.Scores.Vocabulary, Max: 20, Color: tui.ScoreColor(res.Scores.Vocabulary * 5)},
	}
	bars := widgets.VStack{Items: meters}.Render(meterW, len(meters))

	facts := []string{
		factLine("Duration", res.Duration.Actual+"  (expected "+orDash(res.Duration.Expected)+")"),
		factLine("Filler words", fmt.Sprintf("%d total, %.1f per minute", res.Filler.TotalFillerWords, res.Filler.FillerPerMinute)),
	}
	if wpm := res.PaceWPM(); wpm > 0 {
		facts = append(facts, factLine("Pace", fmt.Sprintf("%.0f words per minute", wpm)))
	}
	facts = append(facts, factLine("Analyzer", res.Source))

	var fb strings.Builder
	for _, line := range res.Vocabulary.Feedback {
		fb.WriteString(tui.SubtitleStyle.Render("• "+line) + "\n")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		tui.LabelStyle.Render("Overall  ")+overall,
		"",
		bars,
		"",
		strings.Join(facts, "\n"),
		"",
		strings.TrimRight(fb.String(), "\n"),
		"",
		tui.HintStyle.Render("f filler words    v full breakdown    enter finish"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func factLine(label, value string) string {
	return tui.LabelStyle.Render(fmt.Sprintf("%-14s", label)) + tui.ValueStyle.Render(value)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
