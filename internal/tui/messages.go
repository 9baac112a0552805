package tui

import tea "github.com/charmbracelet/bubbletea"

// StatusMsg updates the status bar.
type StatusMsg struct {
	Text  string
	IsErr bool
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}
