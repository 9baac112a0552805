package screens

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/tui"
)

// Splash is the stack floor. It waits for an explicit keypress; nothing
// navigates away from here on its own.
type Splash struct {
	deps *Deps
	spin spinner.Model
}

func NewSplash(deps *Deps) *Splash {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.AccentStyle
	return &Splash{deps: deps, spin: sp}
}

func (s *Splash) Title() string { return "Speak Sharp" }

func (s *Splash) Init() tea.Cmd {
	return s.spin.Tick
}

func (s *Splash) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s.begin()
		}
	}
	return nil
}

// begin routes past the splash: first launch goes through onboarding, a
// known install without a remembered sign-in goes to the login form,
// everyone else straight to the dashboard.
func (s *Splash) begin() tea.Cmd {
	switch {
	case !s.deps.Config.Onboarding.Complete:
		return s.deps.push(tui.RouteOnboardingWelcome)
	case !s.deps.Account.Get().SignedIn():
		return s.deps.push(tui.RouteLogin)
	default:
		return s.deps.push(tui.RouteHome)
	}
}

func (s *Splash) View(width, height int) string {
	conn := "Connected to " + s.deps.Config.Backend.BaseURL
	if s.deps.Config.Backend.Offline {
		conn = "Offline mode, analyses run locally"
	}
	lines := []string{
		tui.TitleStyle.Render("S P E A K   S H A R P"),
		"",
		tui.SubtitleStyle.Render("Practice speeches. Get honest feedback."),
		"",
		"",
		s.spin.View() + " " + tui.ValueStyle.Render("Press enter to begin"),
		"",
		tui.HintStyle.Render(conn),
	}
	if account := s.deps.Account.Get(); account.SignedIn() {
		lines = append(lines, tui.HintStyle.Render("Remembered sign-in: "+account.Email))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
