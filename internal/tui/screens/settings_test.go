package screens

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/tui"
)

func pushSettings(t *testing.T, deps *Deps) *Settings {
	t.Helper()
	require.NoError(t, deps.Router.Push(tui.RouteSettings))
	return deps.Router.Top().(*Settings)
}

// row index into settingsRows, keyed by label so reordering fails loud
func rowIndex(t *testing.T, s *Settings, label string) int {
	t.Helper()
	for i, row := range s.rows {
		if row.label == label {
			return i
		}
	}
	t.Fatalf("no settings row labelled %q", label)
	return -1
}

func TestSettingsEditWeeklyGoal(t *testing.T) {
	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)
	s.cursor = rowIndex(t, s, "Weekly goal")

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, s.editing)
	require.Equal(t, "5", s.input.Value())

	s.input.SetValue("7")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, s.editing)
	require.True(t, s.dirty)
	require.Equal(t, 7, deps.Config.Practice.WeeklyGoal)
}

func TestSettingsRejectsBadWeeklyGoal(t *testing.T) {
	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)
	s.cursor = rowIndex(t, s, "Weekly goal")

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.input.SetValue("sometimes")
	cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	status, ok := cmd().(tui.StatusMsg)
	require.True(t, ok)
	require.True(t, status.IsErr)
	require.True(t, s.editing, "a rejected value keeps the editor open")
	require.Equal(t, 5, deps.Config.Practice.WeeklyGoal)
}

func TestSettingsToggleOffline(t *testing.T) {
	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)
	s.cursor = rowIndex(t, s, "Offline mode")

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, deps.Config.Backend.Offline)
	require.True(t, s.dirty)

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, deps.Config.Backend.Offline)
}

func TestSettingsVoiceProfileCycles(t *testing.T) {
	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)
	s.cursor = rowIndex(t, s, "Voice profile")

	want := []string{"female", "male", ""}
	for _, expected := range want {
		s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.Equal(t, expected, deps.Config.Backend.Gender)
	}
}

func TestSettingsWritePersistsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SPEAKSHARP_CONFIG", path)

	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)
	s.cursor = rowIndex(t, s, "Weekly goal")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.input.SetValue("9")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	cmd := s.Update(keyRune('w'))
	require.NotNil(t, cmd)
	require.False(t, s.dirty)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSettingsResetWipesSessions(t *testing.T) {
	deps, sessions, ctx := historyDeps(t)
	seedSession(t, ctx, sessions, "Doomed take", time.Hour)

	s := pushSettings(t, deps)

	s.Update(keyRune('R'))
	require.True(t, s.confirming)

	cmd := s.Update(keyRune('y'))
	require.NotNil(t, cmd)
	require.False(t, s.confirming)
	require.True(t, s.resetting)

	done := s.Update(cmd())
	require.NotNil(t, done)
	require.False(t, s.resetting)

	rows, err := deps.History.List(ctx, "profile-1", 0)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestSettingsResetDeclined(t *testing.T) {
	deps := testDeps()
	newTestRouter(t, deps)
	s := pushSettings(t, deps)

	s.Update(keyRune('R'))
	require.True(t, s.confirming)

	s.Update(keyRune('n'))
	require.False(t, s.confirming)
	require.False(t, s.resetting)
}
