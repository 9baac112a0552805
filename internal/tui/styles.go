package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	crumbStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorMantle)
	crumbTopStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorMantle).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	// exported styles the screens package builds its views with
	TitleStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	ValueStyle    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	AccentStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	WarnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorError)
	HintStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)
