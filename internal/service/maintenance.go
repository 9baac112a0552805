package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/speaksharp/speaksharp/internal/database"
)

// MaintenanceService houses destructive/ops actions surfaced through the
// settings screen.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all practice history. Profiles and speech types survive so
// sign-in and the setup screen keep working.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"analyses",
			"sessions",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
