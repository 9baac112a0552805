// Package auth manages local accounts. Credentials never leave the
// machine; passwords are stored as bcrypt hashes in the profile table.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/state"
)

var (
	ErrEmailTaken       = errors.New("auth: email already registered")
	ErrBadCredentials   = errors.New("auth: invalid email or password")
	ErrPasswordTooShort = errors.New("auth: password must be at least 8 characters")
	ErrMissingField     = errors.New("auth: name, email and password are required")
)

// Service registers and signs in local profiles.
type Service struct {
	Profiles *repository.ProfileRepo
	Log      *zap.Logger
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Register creates a profile and returns the signed-in account.
func (s *Service) Register(ctx context.Context, name, email, password string) (state.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return state.Account{}, ErrMissingField
	}
	if !strings.Contains(email, "@") {
		return state.Account{}, fmt.Errorf("auth: %q is not an email address", email)
	}
	if len(password) < 8 {
		return state.Account{}, ErrPasswordTooShort
	}

	existing, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil {
		return state.Account{}, fmt.Errorf("lookup profile: %w", err)
	}
	if existing != nil {
		return state.Account{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return state.Account{}, fmt.Errorf("hash password: %w", err)
	}
	p := repository.Profile{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Profiles.Insert(ctx, p); err != nil {
		return state.Account{}, fmt.Errorf("insert profile: %w", err)
	}
	s.logger().Info("profile registered", zap.String("profile_id", p.ID))
	return account(p), nil
}

// Login verifies credentials and returns the account. Lookup and
// password failures both map to ErrBadCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (state.Account, error) {
	email = normalizeEmail(email)
	p, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil {
		return state.Account{}, fmt.Errorf("lookup profile: %w", err)
	}
	if p == nil {
		return state.Account{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return state.Account{}, ErrBadCredentials
	}
	s.logger().Info("profile signed in", zap.String("profile_id", p.ID))
	return account(*p), nil
}

// Resume restores a remembered account by profile id, used when the
// session vault holds a previous sign-in.
func (s *Service) Resume(ctx context.Context, profileID string) (state.Account, error) {
	p, err := s.Profiles.Get(ctx, profileID)
	if err != nil {
		return state.Account{}, fmt.Errorf("lookup profile: %w", err)
	}
	if p == nil {
		return state.Account{}, ErrBadCredentials
	}
	return account(*p), nil
}

func account(p repository.Profile) state.Account {
	return state.Account{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		SignedInAt: database.Now(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
