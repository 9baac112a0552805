package screens

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
)

func historyDeps(t *testing.T) (*Deps, *repository.SessionRepo, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	now := database.Now()
	require.NoError(t, repository.NewProfileRepo(db).Insert(ctx, repository.Profile{
		ID: "profile-1", Name: "Ada", Email: "ada@example.com",
		PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
	}))
	sessions := repository.NewSessionRepo(db)

	deps := testDeps()
	deps.Account.Set(state.Account{ID: "profile-1", Name: "Ada", Email: "ada@example.com"})
	deps.History = &service.HistoryService{Sessions: sessions}
	deps.Practice = &service.PracticeService{
		Sessions: sessions,
		Session:  deps.Session,
		Account:  deps.Account,
	}
	deps.Maintenance = &service.MaintenanceService{DB: db}
	newTestRouter(t, deps)
	return deps, sessions, ctx
}

func seedSession(t *testing.T, ctx context.Context, repo *repository.SessionRepo, topic string, age time.Duration) string {
	t.Helper()
	now := database.Now()
	id := uuid.NewString()
	require.NoError(t, repo.Insert(ctx, repository.Session{
		ID:              id,
		ProfileID:       "profile-1",
		Topic:           topic,
		SpeechType:      "Prepared Speech",
		DurationSeconds: 312,
		Source:          "local",
		RecordedAt:      time.Now().UTC().Add(-age).Truncate(time.Second),
		CreatedAt:       now,
		UpdatedAt:       now,
	}))
	return id
}

func seedAnalysis(t *testing.T, ctx context.Context, repo *repository.SessionRepo, sessionID string, score float64) {
	t.Helper()
	require.NoError(t, repo.SaveAnalysis(ctx, repository.Analysis{
		SessionID:           sessionID,
		OverallScore:        score,
		Proficiency:         score / 5,
		VoiceModulation:     score / 5,
		SpeechDevelopment:   score / 5,
		SpeechEffectiveness: score / 5,
		Vocabulary:          score / 5,
		FillerTotal:         4,
		FillerPerMinute:     0.8,
		FillerCounts:        map[string]int{"um": 3, "like": 1},
		Feedback:            []string{"Strong vocabulary range."},
		Source:              "local",
		AnalyzedAt:          database.Now(),
	}))
}

func pushHistory(t *testing.T, deps *Deps) *History {
	t.Helper()
	require.NoError(t, deps.Router.Push(tui.RouteHistory))
	hist := deps.Router.Top().(*History)
	hist.Update(hist.Init()())
	return hist
}

func TestHistoryListsNewestFirst(t *testing.T) {
	deps, sessions, ctx := historyDeps(t)
	seedSession(t, ctx, sessions, "Older talk", 48*time.Hour)
	seedSession(t, ctx, sessions, "Fresh talk", time.Hour)

	hist := pushHistory(t, deps)

	require.Len(t, hist.rows, 2)
	require.Equal(t, "Fresh talk", hist.rows[0].Topic)
	require.Equal(t, "Older talk", hist.rows[1].Topic)
}

func TestHistoryEnterOpensStoredFeedback(t *testing.T) {
	deps, sessions, ctx := historyDeps(t)
	id := seedSession(t, ctx, sessions, "Scored talk", time.Hour)
	seedAnalysis(t, ctx, sessions, id, 82.5)

	hist := pushHistory(t, deps)

	cmd := hist.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	hist.Update(cmd())

	require.Equal(t, tui.RouteFeedback, deps.Router.CurrentRoute())
	session := deps.Session.Get()
	require.True(t, session.Review)
	require.True(t, session.HasResult())
	require.InDelta(t, 82.5, session.Result.OverallScore, 0.01)
	require.Equal(t, "Scored talk", session.Topic)
}

func TestHistoryReviewWithoutAnalysisErrors(t *testing.T) {
	deps, sessions, ctx := historyDeps(t)
	seedSession(t, ctx, sessions, "Raw take", time.Hour)

	hist := pushHistory(t, deps)

	cmd := hist.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	errCmd := hist.Update(cmd())
	require.NotNil(t, errCmd)

	status, ok := errCmd().(tui.StatusMsg)
	require.True(t, ok)
	require.True(t, status.IsErr)
	require.Equal(t, tui.RouteHistory, deps.Router.CurrentRoute())
}

func TestHistorySlashOpensSearch(t *testing.T) {
	deps, sessions, ctx := historyDeps(t)
	seedSession(t, ctx, sessions, "Anything", time.Hour)

	hist := pushHistory(t, deps)
	hist.Update(keyRune('/'))

	require.Equal(t, tui.RouteSearch, deps.Router.CurrentRoute())
}
