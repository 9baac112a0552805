package screens

import (
	"testing"

	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/config"
	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
)

// testDeps builds deps good enough for constructing screens. Factories
// must not touch services or the router, so zero-value services suffice.
func testDeps() *Deps {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "http://localhost:8000"
	cfg.Practice.SpeechType = "Prepared Speech"
	cfg.Practice.Duration = "5-7"
	cfg.Practice.WeeklyGoal = 5
	return &Deps{
		Config:      cfg,
		Log:         zap.NewNop(),
		Practice:    &service.PracticeService{},
		History:     &service.HistoryService{},
		Maintenance: &service.MaintenanceService{},
		Account:     state.NewStore(state.Account{}),
		Session:     state.NewStore(state.Practice{}),
	}
}

// newTestRouter wires the real route table to a router rooted at the
// splash screen, the same shape the composition root builds.
func newTestRouter(t *testing.T, deps *Deps) *tui.Router {
	t.Helper()
	router, err := tui.NewRouter(Routes(deps), tui.RouteSplash)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	deps.Router = router
	return router
}

func TestRoutesCoverEveryKnownRoute(t *testing.T) {
	table := Routes(testDeps())
	want := tui.AllRoutes()
	if table.Len() != len(want) {
		t.Fatalf("table has %d routes, want %d", table.Len(), len(want))
	}
	for _, id := range want {
		factory, err := table.Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", id, err)
		}
		screen := factory()
		if screen == nil {
			t.Fatalf("factory for %s returned nil", id)
		}
		if screen.Title() == "" {
			t.Fatalf("screen for %s has empty title", id)
		}
	}
}

func TestFactoriesReturnFreshInstances(t *testing.T) {
	table := Routes(testDeps())
	factory, err := table.Resolve(tui.RouteHome)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if factory() == factory() {
		t.Fatal("factory must build a new screen per call")
	}
}
