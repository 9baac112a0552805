package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/speaksharp/speaksharp/internal/database/repository"
)

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	db, sessions, ctx := newHistoryDB(t)

	id := insertSession(t, ctx, sessions, "Talk", "Prepared Speech", time.Now())
	_, err := sessions.Get(ctx, id)
	require.NoError(t, err)

	svc := &MaintenanceService{DB: db}
	require.NoError(t, svc.Reset(ctx))

	rows, err := sessions.List(ctx, repository.SessionFilters{})
	require.NoError(t, err)
	require.Empty(t, rows)

	// profiles survive a reset
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count))
	require.Equal(t, 1, count)
}
