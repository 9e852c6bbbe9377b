package auth

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProvider_SignInResumeEnd(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider(time.Hour)

	user, err := p.SignUp(ctx, "ada@example.com", "Ada", "password123")
	require.NoError(t, err)
	assert.Contains(t, user.ID, "user:")

	_, err = p.SignUp(ctx, "ADA@example.com", "", "password123")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = p.SignIn(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	sess, err := p.SignIn(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token())
	assert.Equal(t, "Ada", sess.User().Name)
	assert.Equal(t, 1, p.ActiveSessions())

	resumed, err := p.Resume(ctx, sess.Token())
	require.NoError(t, err)
	assert.Equal(t, user.ID, resumed.User().ID)

	require.NoError(t, sess.End(ctx))
	assert.Equal(t, 0, p.ActiveSessions())

	_, err = p.Resume(ctx, sess.Token())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Ending twice leaves the same end state.
	assert.NoError(t, sess.End(ctx))
}

func TestMemoryProvider_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	_, err := p.SignUp(ctx, "grace@example.com", "", "password123")
	require.NoError(t, err)
	sess, err := p.SignIn(ctx, "grace@example.com", "password123")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = p.Resume(ctx, sess.Token())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, p.ActiveSessions())
}

func TestMemoryProvider_EndHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewMemoryProvider(time.Hour)
	sess := NewSession(domain.User{ID: "user:1"}, "token", time.Now().Add(time.Hour), p)

	err := sess.End(ctx)
	assert.ErrorIs(t, err, domain.ErrTerminationFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_EndWithoutProvider(t *testing.T) {
	sess := NewSession(domain.User{}, "token", time.Time{}, nil)
	assert.ErrorIs(t, sess.End(context.Background()), domain.ErrTerminationFailed)
}
