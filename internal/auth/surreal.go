package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/taskboard/internal/domain"
)

// UserStore is the subset of database.UserStore the provider needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, name, password string) (*domain.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// SessionStore is the subset of database.SessionStore the provider needs.
type SessionStore interface {
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error
	FindUser(ctx context.Context, token string) (*domain.SessionRecord, *domain.User, error)
	Delete(ctx context.Context, token string) error
}

// SurrealProvider authenticates against the SurrealDB user and session tables.
type SurrealProvider struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

// NewSurrealProvider creates a provider issuing sessions valid for ttl.
func NewSurrealProvider(users UserStore, sessions SessionStore, ttl time.Duration) *SurrealProvider {
	return &SurrealProvider{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

// SignUp registers a new user.
func (p *SurrealProvider) SignUp(ctx context.Context, email, name, password string) (*domain.User, error) {
	user, err := p.users.CreateUser(ctx, email, name, password)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Successfully signed up user", "email", email)
	return user, nil
}

// SignIn checks credentials and opens a new session.
func (p *SurrealProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return nil, err
	}
	expires := p.now().Add(p.ttl)
	if err := p.sessions.Create(ctx, token, user.ID, expires); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	slog.InfoContext(ctx, "Successfully signed in user", "email", email, "user_id", user.ID)
	return NewSession(*user, token, expires, p), nil
}

// Resume returns the session for token, or domain.ErrSessionNotFound.
func (p *SurrealProvider) Resume(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	rec, user, err := p.sessions.FindUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return NewSession(*user, token, rec.ExpiresAt, p), nil
}

// End deletes the session. An unknown token is already ended and is not an error.
func (p *SurrealProvider) End(ctx context.Context, token string) error {
	if err := p.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}
