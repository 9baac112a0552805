package screens

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/speaksharp/speaksharp/internal/service"
)

// statsLoadedMsg carries the aggregate history stats that the home,
// profile, progress and notifications screens load on init.
type statsLoadedMsg struct {
	stats service.Stats
	err   error
}

func loadStats(deps *Deps) tea.Cmd {
	account := deps.Account.Get()
	if !account.SignedIn() {
		return nil
	}
	history := deps.History
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stats, err := history.Stats(ctx, account.ID)
		return statsLoadedMsg{stats: stats, err: err}
	}
}
