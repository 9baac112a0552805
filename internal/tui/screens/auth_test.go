package screens

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/auth"
	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/secrets"
	"github.com/speaksharp/speaksharp/internal/tui"
)

// signInDeps wires a real sqlite-backed auth service so the form tests
// exercise the whole path down to bcrypt.
func signInDeps(t *testing.T) *Deps {
	t.Helper()
	deps := testDeps()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	deps.Auth = &auth.Service{Profiles: repository.NewProfileRepo(db)}
	deps.Vault = secrets.Open(t.TempDir())
	newTestRouter(t, deps)
	return deps
}

func registerProfile(t *testing.T, deps *Deps) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := deps.Auth.Register(ctx, "Ada Lovelace", "ada@example.com", "correct horse")
	require.NoError(t, err)
}

func TestLoginFlowLandsOnHome(t *testing.T) {
	deps := signInDeps(t)
	registerProfile(t, deps)

	require.NoError(t, deps.Router.Push(tui.RouteLogin))
	login := deps.Router.Top().(*Login)
	login.email.SetValue("ada@example.com")
	login.password.SetValue("correct horse")

	cmd := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, login.busy)

	login.Update(cmd())

	require.Equal(t, tui.RouteHome, deps.Router.CurrentRoute())
	require.Equal(t, 2, deps.Router.Depth(), "stack must rebuild as splash, home")

	account := deps.Account.Get()
	require.True(t, account.SignedIn())
	require.Equal(t, "Ada Lovelace", account.Name)

	remembered, err := deps.Vault.Remembered()
	require.NoError(t, err)
	require.Equal(t, account.ID, remembered)
}

func TestLoginEmptyFormIsRejected(t *testing.T) {
	deps := signInDeps(t)

	require.NoError(t, deps.Router.Push(tui.RouteLogin))
	login := deps.Router.Top().(*Login)

	cmd := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.False(t, login.busy)

	status, ok := cmd().(tui.StatusMsg)
	require.True(t, ok)
	require.True(t, status.IsErr)
	require.Equal(t, tui.RouteLogin, deps.Router.CurrentRoute())
}

func TestLoginWrongPasswordStaysPut(t *testing.T) {
	deps := signInDeps(t)
	registerProfile(t, deps)

	require.NoError(t, deps.Router.Push(tui.RouteLogin))
	login := deps.Router.Top().(*Login)
	login.email.SetValue("ada@example.com")
	login.password.SetValue("wrong horse!")

	cmd := login.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	errCmd := login.Update(cmd())
	require.NotNil(t, errCmd)

	status, ok := errCmd().(tui.StatusMsg)
	require.True(t, ok)
	require.True(t, status.IsErr)

	require.False(t, login.busy)
	require.Equal(t, tui.RouteLogin, deps.Router.CurrentRoute())
	require.False(t, deps.Account.Get().SignedIn())
}

func TestRegisterFlowCreatesAccount(t *testing.T) {
	deps := signInDeps(t)

	require.NoError(t, deps.Router.Push(tui.RouteLogin))
	require.NoError(t, deps.Router.Push(tui.RouteRegister))
	form := deps.Router.Top().(*Register)
	form.name.SetValue("Grace Hopper")
	form.email.SetValue("grace@example.com")
	form.password.SetValue("nanoseconds")
	form.confirm.SetValue("nanoseconds")

	cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	form.Update(cmd())

	require.Equal(t, tui.RouteHome, deps.Router.CurrentRoute())
	require.Equal(t, 2, deps.Router.Depth())
	require.Equal(t, "Grace Hopper", deps.Account.Get().Name)
}

func TestRegisterMismatchedPasswords(t *testing.T) {
	deps := signInDeps(t)

	require.NoError(t, deps.Router.Push(tui.RouteRegister))
	form := deps.Router.Top().(*Register)
	form.name.SetValue("Grace Hopper")
	form.email.SetValue("grace@example.com")
	form.password.SetValue("nanoseconds")
	form.confirm.SetValue("nanosecondz")

	cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.False(t, form.busy)

	status, ok := cmd().(tui.StatusMsg)
	require.True(t, ok)
	require.True(t, status.IsErr)
	require.Equal(t, tui.RouteRegister, deps.Router.CurrentRoute())
}
