package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

// Profile shows the signed-in account next to lifetime practice totals.
type Profile struct {
	deps  *Deps
	stats service.Stats
}

func NewProfile(deps *Deps) *Profile {
	return &Profile{deps: deps}
}

func (p *Profile) Title() string { return "Profile" }

func (p *Profile) Init() tea.Cmd { return loadStats(p.deps) }

func (p *Profile) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		p.stats = msg.stats
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			return p.deps.push(tui.RouteProgress)
		case "s":
			return p.deps.push(tui.RouteSettings)
		case "u":
			return p.deps.push(tui.RoutePayment)
		case "o":
			return p.signOut()
		}
	}
	return nil
}

// signOut clears the remembered account and drops back to the login
// screen above the splash floor.
func (p *Profile) signOut() tea.Cmd {
	if err := p.deps.Vault.Forget(); err != nil {
		p.deps.logger().Warn("forget remembered account", zap.Error(err))
	}
	p.deps.Account.Set(state.Account{})
	p.deps.Session.Set(state.Practice{})
	p.deps.logger().Info("signed out")
	p.deps.Router.PopToFloor()
	if cmd := p.deps.push(tui.RouteLogin); cmd != nil {
		return cmd
	}
	return tui.StatusCmd("Signed out")
}

func (p *Profile) View(width, height int) string {
	account := p.deps.Account.Get()

	who := []string{
		factLine("Name", account.Name),
		factLine("Email", account.Email),
	}
	if !account.SignedInAt.IsZero() {
		who = append(who, factLine("Signed in", account.SignedInAt.Format("2 Jan 15:04")))
	}
	who = append(who, factLine("Plan", "Free"))

	totals := p.stats.Totals
	lifetime := []string{
		factLine("Sessions", fmt.Sprintf("%d", totals.Sessions)),
		factLine("Talk time", formatTalkTime(totals.TotalSeconds)),
		factLine("Average", fmt.Sprintf("%.1f", totals.AverageScore)),
		factLine("Best", fmt.Sprintf("%.1f", totals.BestScore)),
	}

	row := widgets.HStack{
		Items: []widgets.Widget{
			widgets.Panel{Title: "Account", Content: lipgloss.JoinVertical(lipgloss.Left, who...)},
			widgets.Panel{Title: "Lifetime", Content: lipgloss.JoinVertical(lipgloss.Left, lifetime...)},
		},
		Gap: 1,
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("Profile"),
		"",
		row.Render(maxInt(56, width-8), 7),
		"",
		tui.HintStyle.Render("g progress    s settings    u upgrade    o sign out"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// formatTalkTime renders cumulative seconds as hours and minutes.
func formatTalkTime(seconds float64) string {
	total := int(seconds)
	h, m := total/3600, (total%3600)/60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
