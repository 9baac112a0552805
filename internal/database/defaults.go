package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/speaksharp/speaksharp/internal/database/repository"
)

// SeedDefaults ensures the baseline speech types exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	typeRepo := repository.NewSpeechTypeRepo(db)
	existing, err := typeRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []repository.SpeechType{
		{Name: "Icebreaker", Description: "Introduce yourself and break the ice", MinMinutes: 4, MaxMinutes: 6},
		{Name: "Prepared Speech", Description: "A standard prepared talk on your topic", MinMinutes: 5, MaxMinutes: 7},
		{Name: "Evaluation", Description: "Evaluate another speaker's talk", MinMinutes: 2, MaxMinutes: 3},
		{Name: "Table Topics", Description: "Impromptu response to a prompt", MinMinutes: 1, MaxMinutes: 2},
	}
	for idx, st := range defaults {
		st.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("speech-type:"+st.Name)).String()
		st.SortOrder = idx
		if err := typeRepo.Upsert(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
