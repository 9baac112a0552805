// Package screens holds the leaf UI units behind the route table. Every
// screen is constructed fresh on push by a zero-argument factory closing
// over Deps, renders into the box the host hands it, and navigates by
// calling the router it was given by reference.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/auth"
	"github.com/speaksharp/speaksharp/internal/backend"
	"github.com/speaksharp/speaksharp/internal/config"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/secrets"
	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
)

// Deps is the bundle every screen factory closes over. Router is nil
// while the route table is being built and assigned right after the
// router is constructed from it, so screen constructors must not touch
// it; by the time a factory runs (at push) it is always set.
type Deps struct {
	Config      *config.Config
	Log         *zap.Logger
	Backend     *backend.Client
	Auth        *auth.Service
	Practice    *service.PracticeService
	History     *service.HistoryService
	Maintenance *service.MaintenanceService
	Vault       *secrets.Vault
	Account     *state.Store[state.Account]
	Session     *state.Store[state.Practice]
	Types       *repository.SpeechTypeRepo
	Router      *tui.Router
}

func (d *Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// push routes a navigation error into the status bar instead of
// swallowing it.
func (d *Deps) push(route string) tea.Cmd {
	if err := d.Router.Push(route); err != nil {
		d.logger().Error("push failed", zap.String("route", route), zap.Error(err))
		return tui.ErrorCmd(err)
	}
	return nil
}
