package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

type plan struct {
	name  string
	price string
	perks []string
}

var plans = []plan{
	{
		name:  "Free",
		price: "$0",
		perks: []string{"Local analysis", "Session history", "Weekly goals"},
	},
	{
		name:  "Pro monthly",
		price: "$7.99/mo",
		perks: []string{"Cloud analysis", "Transcription", "Unlimited sync"},
	},
	{
		name:  "Pro yearly",
		price: "$59.99/yr",
		perks: []string{"Everything in Pro", "Two months free", "Early features"},
	},
}

// Payment shows the plan ladder. Checkout happens on the website, the
// terminal only points there.
type Payment struct {
	deps   *Deps
	cursor int
}

func NewPayment(deps *Deps) *Payment {
	return &Payment{deps: deps, cursor: 1}
}

func (p *Payment) Title() string { return "Upgrade" }

func (p *Payment) Init() tea.Cmd { return nil }

func (p *Payment) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h":
			if p.cursor > 0 {
				p.cursor--
			}
		case "right", "l":
			if p.cursor < len(plans)-1 {
				p.cursor++
			}
		case "enter":
			return tui.StatusCmd("Manage your plan at speaksharp.app/billing")
		}
	}
	return nil
}

func (p *Payment) View(width, height int) string {
	cards := make([]widgets.Widget, 0, len(plans))
	for i, pl := range plans {
		var b strings.Builder
		b.WriteString(tui.ValueStyle.Render(pl.price) + "\n\n")
		for _, perk := range pl.perks {
			b.WriteString("· " + perk + "\n")
		}
		cards = append(cards, widgets.Panel{
			Title:   pl.name,
			Content: strings.TrimRight(b.String(), "\n"),
			Accent:  i == p.cursor,
		})
	}

	row := widgets.HStack{Items: cards, Gap: 2}
	body := lipgloss.JoinVertical(lipgloss.Center,
		tui.TitleStyle.Render("Go Pro"),
		tui.SubtitleStyle.Render("Cloud scoring hears pauses and tone the local analyzer can't."),
		"",
		row.Render(maxInt(60, width-10), 9),
		"",
		tui.HintStyle.Render("←/→ choose    enter continue on the web"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
