package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

// AdvancedAnalysis is the full breakdown: pauses, vocabulary, delivery
// pace and the transcript excerpt.
type AdvancedAnalysis struct {
	deps *Deps
}

func NewAdvancedAnalysis(deps *Deps) *AdvancedAnalysis {
	return &AdvancedAnalysis{deps: deps}
}

func (a *AdvancedAnalysis) Title() string { return "Breakdown" }

func (a *AdvancedAnalysis) Init() tea.Cmd { return nil }

func (a *AdvancedAnalysis) Update(tea.Msg) tea.Cmd { return nil }

func (a *AdvancedAnalysis) View(width, height int) string {
	session := a.deps.Session.Get()
	if !session.HasResult() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			tui.SubtitleStyle.Render("No analysis to break down."))
	}
	res := session.Result

	pauses := strings.Join([]string{
		fmt.Sprintf("Mid-sentence   %d", res.Pauses.MidSentencePauses),
		fmt.Sprintf("Long pauses    %d", res.Pauses.LongPauses),
		fmt.Sprintf("Average        %.1fs", res.Pauses.AveragePauseSecs),
	}, "\n")

	vocab := strings.Join([]string{
		fmt.Sprintf("Diversity      %.0f%%", res.Vocabulary.LexicalDiversity*100),
		fmt.Sprintf("Unique words   %d", res.Vocabulary.UniqueWords),
		fmt.Sprintf("Advanced       %d", res.Vocabulary.AdvancedVocabCount),
	}, "\n")

	pace := "no transcript attached"
	if wpm := res.PaceWPM(); wpm > 0 {
		pace = fmt.Sprintf("%.0f wpm", wpm)
	}
	delivery := strings.Join([]string{
		"Pace           " + pace,
		"Actual         " + res.Duration.Actual,
		"Expected       " + orDash(res.Duration.Expected),
	}, "\n")

	row := widgets.HStack{
		Items: []widgets.Widget{
			widgets.Panel{Title: "Pauses", Content: pauses},
			widgets.Panel{Title: "Vocabulary", Content: vocab},
			widgets.Panel{Title: "Delivery", Content: delivery},
		},
		Gap: 1,
	}

	blocks := []string{
		tui.TitleStyle.Render("Advanced analysis"),
		"",
		row.Render(maxInt(48, width-4), 5),
	}
	if t := strings.TrimSpace(res.Transcription); t != "" {
		excerpt := transcriptExcerpt(t, maxInt(40, width-12), 4)
		blocks = append(blocks, "",
			widgets.Panel{Title: "Transcript", Content: excerpt}.Render(maxInt(48, width-4), 6))
	}
	blocks = append(blocks, "", tui.HintStyle.Render("esc back to feedback"))

	body := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// transcriptExcerpt wraps the opening of the transcript to fit the
// panel, dropping the rest behind an ellipsis.
func transcriptExcerpt(text string, width, lines int) string {
	words := strings.Fields(text)
	var out []string
	var line strings.Builder
	for _, w := range words {
		if line.Len()+len(w)+1 > width {
			out = append(out, line.String())
			line.Reset()
			if len(out) == lines {
				out[lines-1] += " ..."
				return strings.Join(out, "\n")
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}
