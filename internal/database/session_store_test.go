package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nfrund/taskboard/internal/domain"
	"github.com/nfrund/taskboard/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
)

func TestParseRecordID(t *testing.T) {
	rid, err := parseRecordID("user:abc")
	require.NoError(t, err)
	assert.Equal(t, "user", rid.Table)
	assert.Equal(t, "abc", rid.ID)

	for _, bad := range []string{"", "user", ":abc", "user:"} {
		_, err := parseRecordID(bad)
		assert.Error(t, err, bad)
	}
}

// setupTestDB connects to the configured SurrealDB or skips.
func setupTestDB(t *testing.T) *surrealdb.DB {
	t.Helper()
	cfg := testutils.SurrealConfigForTests(t)

	db, err := NewDB(context.Background(), cfg)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func TestSessionStore_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users := NewUserStore(db)
	sessions := NewSessionStore(db)

	email := testutils.UniqueEmail("session")
	user, err := users.CreateUser(ctx, email, "Session User", "password123")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Execute(ctx, db, "DELETE user WHERE email = $email", map[string]any{"email": email})
	})

	_, err = users.CreateUser(ctx, email, "", "password123")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	verified, err := users.VerifyCredentials(ctx, email, "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, err = users.VerifyCredentials(ctx, email, "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	token := fmt.Sprintf("token-%d", time.Now().UnixNano())
	require.NoError(t, sessions.Create(ctx, token, user.ID, time.Now().Add(time.Hour)))

	rec, found, err := sessions.FindUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, email, found.Email)
	assert.Equal(t, token, rec.Token)

	require.NoError(t, sessions.Delete(ctx, token))
	assert.ErrorIs(t, sessions.Delete(ctx, token), domain.ErrSessionNotFound)

	_, _, err = sessions.FindUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
