// Package auth is the authentication provider: it signs users in, resumes
// sessions from a cookie token and ends them.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/nfrund/taskboard/internal/domain"
)

// Provider is the contract every authentication backend satisfies.
type Provider interface {
	SignUp(ctx context.Context, email, name, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Resume(ctx context.Context, token string) (*Session, error)
	End(ctx context.Context, token string) error
}

// Ender terminates the session identified by token.
type Ender interface {
	End(ctx context.Context, token string) error
}

// Session is the handle for one signed-in browser. It is handed explicitly to
// the views that need it instead of being looked up ambiently.
type Session struct {
	user      domain.User
	token     string
	expiresAt time.Time
	ender     Ender
}

// NewSession builds a handle whose End is served by ender.
func NewSession(user domain.User, token string, expiresAt time.Time, ender Ender) *Session {
	return &Session{user: user, token: token, expiresAt: expiresAt, ender: ender}
}

// User returns the signed-in user.
func (s *Session) User() domain.User { return s.user }

// Token returns the opaque session token stored in the cookie.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the provider stops honouring the token.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// End asks the provider to terminate this session.
func (s *Session) End(ctx context.Context) error {
	if s.ender == nil {
		return fmt.Errorf("%w: no provider attached", domain.ErrTerminationFailed)
	}
	if err := s.ender.End(ctx, s.token); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTerminationFailed, err)
	}
	return nil
}

// generateSecureToken creates a cryptographically secure random token.
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
