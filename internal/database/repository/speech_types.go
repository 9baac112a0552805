package repository

import (
	"context"
	"database/sql"
)

// SpeechTypeRepo handles the seeded practice formats.
type SpeechTypeRepo struct {
	db *sql.DB
}

func NewSpeechTypeRepo(db *sql.DB) *SpeechTypeRepo {
	return &SpeechTypeRepo{db: db}
}

func (r *SpeechTypeRepo) Upsert(ctx context.Context, s SpeechType) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO speech_types(id, name, description, min_minutes, max_minutes, sort_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 description=excluded.description,
	 min_minutes=excluded.min_minutes,
	 max_minutes=excluded.max_minutes,
	 sort_order=excluded.sort_order;
	`, s.ID, s.Name, s.Description, s.MinMinutes, s.MaxMinutes, s.SortOrder)
	return err
}

func (r *SpeechTypeRepo) List(ctx context.Context) ([]SpeechType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, min_minutes, max_minutes, sort_order FROM speech_types ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SpeechType
	for rows.Next() {
		var s SpeechType
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.MinMinutes, &s.MaxMinutes, &s.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SpeechTypeRepo) GetByName(ctx context.Context, name string) (*SpeechType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, min_minutes, max_minutes, sort_order FROM speech_types WHERE name = ?`, name)
	var s SpeechType
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.MinMinutes, &s.MaxMinutes, &s.SortOrder); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
