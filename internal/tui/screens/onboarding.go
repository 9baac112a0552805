package screens

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/config"
	"github.com/speaksharp/speaksharp/internal/tui"
)

type onboardingStep int

const (
	stepWelcome onboardingStep = iota
	stepFeatures
	stepReady
	stepTutorial
	stepStartup
)

const tutorialMarkdown = `# How a session works

1. **Pick a topic** and a speech type on the recording screen.
2. **Record** your take; the clock keeps you inside the expected range.
3. **Analyze** to score the delivery across five dimensions.
4. **Review** filler words, pauses and vocabulary in the breakdowns.

Scores run 0 to 20 per dimension, 100 overall. Your history keeps every
take so you can watch the trend move.
`

// Onboarding renders the five first-run screens. Each step is its own
// route so the back key naturally walks the flow backwards.
type Onboarding struct {
	deps     *Deps
	step     onboardingStep
	tutorial string
}

func NewOnboarding(deps *Deps, step onboardingStep) *Onboarding {
	o := &Onboarding{deps: deps, step: step}
	if step == stepTutorial {
		o.tutorial = tutorialMarkdown
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(64)); err == nil {
			if out, err := r.Render(tutorialMarkdown); err == nil {
				o.tutorial = out
			}
		}
	}
	return o
}

func (o *Onboarding) Title() string {
	switch o.step {
	case stepWelcome:
		return "Welcome"
	case stepFeatures:
		return "Features"
	case stepReady:
		return "Ready"
	case stepTutorial:
		return "Tutorial"
	default:
		return "Setup"
	}
}

func (o *Onboarding) Init() tea.Cmd { return nil }

func (o *Onboarding) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" {
		return nil
	}
	switch o.step {
	case stepWelcome:
		return o.deps.push(tui.RouteOnboardingFeatures)
	case stepFeatures:
		return o.deps.push(tui.RouteOnboardingReady)
	case stepReady:
		return o.deps.push(tui.RouteOnboardingTutorial)
	case stepTutorial:
		return o.deps.push(tui.RouteOnboardingStartup)
	default:
		return o.finish()
	}
}

// finish marks onboarding done, persists the flag and hands over to
// sign-in.
func (o *Onboarding) finish() tea.Cmd {
	o.deps.Config.Onboarding.Complete = true
	if err := config.Save(*o.deps.Config); err != nil {
		o.deps.logger().Warn("save config", zap.Error(err))
	}
	o.deps.logger().Info("onboarding complete")
	if cmd := o.deps.push(tui.RouteLogin); cmd != nil {
		return cmd
	}
	return tui.StatusCmd("Setup complete")
}

func (o *Onboarding) View(width, height int) string {
	var body string
	switch o.step {
	case stepWelcome:
		body = lipgloss.JoinVertical(lipgloss.Center,
			tui.TitleStyle.Render("Welcome to Speak Sharp"),
			"",
			"Your speech coach for the terminal.",
			"Practice out loud, keep every take, and watch",
			"your delivery sharpen over time.",
			"",
			tui.HintStyle.Render("Press enter to continue"),
		)
	case stepFeatures:
		body = lipgloss.JoinVertical(lipgloss.Left,
			tui.TitleStyle.Render("What you get"),
			"",
			featureLine("Timed practice", "a recording clock tuned to each speech type"),
			featureLine("Honest scoring", "five dimensions, 100 points, no inflation"),
			featureLine("Filler hunting", "um, uh and like counted per minute"),
			featureLine("Full history", "every session stored locally and searchable"),
			featureLine("Backend sync", "pull server-side analyses when online"),
			"",
			tui.HintStyle.Render("Press enter to continue"),
		)
	case stepReady:
		body = lipgloss.JoinVertical(lipgloss.Center,
			tui.TitleStyle.Render("Find a quiet spot"),
			"",
			"Sessions work best somewhere you can speak at",
			"full volume without holding back.",
			"",
			tui.SubtitleStyle.Render("A one-minute icebreaker is a fine first take."),
			"",
			tui.HintStyle.Render("Press enter for a short tutorial"),
		)
	case stepTutorial:
		body = lipgloss.JoinVertical(lipgloss.Left,
			o.tutorial,
			tui.HintStyle.Render("Press enter to continue"),
		)
	default:
		cfg := o.deps.Config
		body = lipgloss.JoinVertical(lipgloss.Left,
			tui.TitleStyle.Render("Starting defaults"),
			"",
			settingLine("Speech type", cfg.Practice.SpeechType),
			settingLine("Expected length", cfg.Practice.Duration+" minutes"),
			settingLine("Weekly goal", strconv.Itoa(cfg.Practice.WeeklyGoal)+" sessions"),
			"",
			tui.SubtitleStyle.Render("All of this can be changed later in Settings."),
			"",
			tui.HintStyle.Render("Press enter to finish setup and sign in"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func featureLine(name, detail string) string {
	return tui.AccentStyle.Render("• "+name) + tui.SubtitleStyle.Render("  "+detail)
}

func settingLine(label, value string) string {
	return tui.LabelStyle.Render(label+": ") + tui.ValueStyle.Render(value)
}
