package repository

import (
	"context"
	"database/sql"
)

// ProfileRepo handles local accounts.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Insert(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO profiles(id, name, email, password_hash, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, p.ID, p.Name, p.Email, p.PasswordHash)
	return err
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM profiles WHERE email = ?`, email)
	return scanProfile(row)
}

func scanProfile(row *sql.Row) (*Profile, error) {
	var p Profile
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
