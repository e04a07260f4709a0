package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hexfray/authd/internal/auth/domain"
	"github.com/hexfray/authd/internal/auth/store"
	"github.com/hexfray/authd/pkg/cryptox"
	"github.com/hexfray/authd/pkg/idx"
	"github.com/hexfray/authd/pkg/jwtx"
	"github.com/hexfray/authd/pkg/slogx"
)

// MinPasswordLength is the registration floor; anything shorter is rejected
// before hashing.
const MinPasswordLength = 8

var (
	ErrWeakPassword = errors.New("weak_password")

	ErrDuplicateEmail = errors.New("duplicate_email")

	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so login never reveals whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUserNotFound is only reachable after authentication, when a token's
	// subject no longer exists in the store.
	ErrUserNotFound = errors.New("user_not_found")
)

// AuthService orchestrates registration, login and the token-guarded
// operations. Each call is an independent transaction; the only shared
// state is the store itself.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	TokenTTL time.Duration
}

// WriteResult echoes the authenticated write stub.
type WriteResult struct {
	UserID        string `json:"userId"`
	ContentLength int    `json:"contentLength"`
}

// Register validates and persists a new user, returning its public view.
//
// The pre-check against an existing email is advisory only: two concurrent
// registrations can both pass it, so the store's UNIQUE constraint is the
// authoritative guard and its violation maps to the same ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (domain.UserView, error) {
	l := slogx.FromContext(ctx)

	if len(password) < MinPasswordLength {
		return domain.UserView{}, ErrWeakPassword
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.UserView{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return domain.UserView{}, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrInvalidInput) {
			return domain.UserView{}, ErrWeakPassword
		}
		return domain.UserView{}, fmt.Errorf("register: hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against a concurrent registration.
			return domain.UserView{}, ErrDuplicateEmail
		}
		return domain.UserView{}, fmt.Errorf("register: create user: %w", err)
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u.View(), nil
}

// Login verifies credentials and issues a signed access token carrying the
// user's id and email. There is no lockout or backoff here.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: lookup email: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrCorruptHash) {
			// Operational fault, not a bad credential.
			return "", fmt.Errorf("login: stored hash unusable for user %s: %w", u.ID, err)
		}
		l.Info("password verification failed", slog.String("user_id", u.ID))
		return "", ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Email, s.tokenTTL(), time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	return token, nil
}

// GetProfile returns the public view for a user id taken from a verified
// token's subject.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (domain.UserView, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserView{}, ErrUserNotFound
		}
		return domain.UserView{}, fmt.Errorf("profile: lookup user: %w", err)
	}
	return u.View(), nil
}

// Write is a deliberate stub: it confirms the caller is an authenticated,
// existing user and echoes the content length. Nothing is persisted.
func (s *AuthService) Write(ctx context.Context, userID, content string) (WriteResult, error) {
	_, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WriteResult{}, ErrUserNotFound
		}
		return WriteResult{}, fmt.Errorf("write: lookup user: %w", err)
	}

	return WriteResult{UserID: userID, ContentLength: len(content)}, nil
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultAccessTokenTTL
}
