package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/state"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	return &Service{Profiles: repository.NewProfileRepo(db)}, ctx
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc, ctx := newTestService(t)

	acct, err := svc.Register(ctx, "Ada Lovelace", "Ada@Example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, acct.ID)
	require.Equal(t, "ada@example.com", acct.Email)
	require.True(t, acct.SignedIn())

	got, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)
	require.Equal(t, "Ada Lovelace", got.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	svc, ctx := newTestService(t)

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong horse!")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, ctx := newTestService(t)

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Someone Else", "ADA@example.com", "another pass")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	svc, ctx := newTestService(t)

	_, err := svc.Register(ctx, "", "ada@example.com", "correct horse")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Register(ctx, "Ada", "not-an-email", "correct horse")
	require.Error(t, err)

	_, err = svc.Register(ctx, "Ada", "ada@example.com", "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestResume(t *testing.T) {
	t.Parallel()
	svc, ctx := newTestService(t)

	acct, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	got, err := svc.Resume(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	_, err = svc.Resume(ctx, "missing-id")
	require.True(t, errors.Is(err, ErrBadCredentials))

	var zero state.Account
	require.False(t, zero.SignedIn())
}
