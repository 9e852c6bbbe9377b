package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nfrund/taskboard/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type sessionRecord struct {
	ID        *surrealmodels.RecordID       `json:"id,omitempty"`
	Token     string                        `json:"token"`
	User      *surrealmodels.RecordID       `json:"user"`
	CreatedAt *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
	ExpiresAt *surrealmodels.CustomDateTime `json:"expires_at,omitempty"`
}

func (r *sessionRecord) toDomain() *domain.SessionRecord {
	out := &domain.SessionRecord{Token: r.Token}
	if r.User != nil {
		out.UserID = r.User.String()
	}
	if r.CreatedAt != nil {
		out.CreatedAt = r.CreatedAt.Time
	}
	if r.ExpiresAt != nil {
		out.ExpiresAt = r.ExpiresAt.Time
	}
	return out
}

// SessionStore keeps server-side session records so a signed-out token stops
// resolving even if the browser still holds the cookie.
type SessionStore struct {
	db *surrealdb.DB
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *surrealdb.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create stores a session for userID valid until expiresAt.
func (s *SessionStore) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	user, err := parseRecordID(userID)
	if err != nil {
		return err
	}

	query := `
		CREATE session SET
			token = $token,
			user = $user,
			created_at = time::now(),
			expires_at = $expires
	`
	return Execute(ctx, s.db, query, map[string]any{
		"token":   token,
		"user":    user,
		"expires": surrealmodels.CustomDateTime{Time: expiresAt.UTC()},
	})
}

// FindUser resolves a live session token to its user.
func (s *SessionStore) FindUser(ctx context.Context, token string) (*domain.SessionRecord, *domain.User, error) {
	rec, err := QueryOne[sessionRecord](ctx, s.db,
		"SELECT * FROM session WHERE token = $token AND expires_at > time::now()",
		map[string]any{"token": token})
	if err != nil {
		return nil, nil, fmt.Errorf("database query failed: %w", err)
	}
	if rec == nil || rec.User == nil {
		return nil, nil, domain.ErrSessionNotFound
	}

	user, err := QueryOne[userRecord](ctx, s.db,
		"SELECT id, email, name FROM user WHERE id = $user",
		map[string]any{"user": rec.User})
	if err != nil {
		return nil, nil, fmt.Errorf("database query failed: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrSessionNotFound
	}
	return rec.toDomain(), user.toDomain(), nil
}

// Delete removes the session for token. Deleting an unknown token reports
// domain.ErrSessionNotFound.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	deleted, err := Query[sessionRecord](ctx, s.db,
		"DELETE session WHERE token = $token RETURN BEFORE",
		map[string]any{"token": token})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if len(deleted) == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// parseRecordID splits "table:id" into a record id.
func parseRecordID(id string) (*surrealmodels.RecordID, error) {
	table, key, ok := strings.Cut(id, ":")
	if !ok || table == "" || key == "" {
		return nil, fmt.Errorf("invalid record id %q", id)
	}
	rid := surrealmodels.NewRecordID(table, key)
	return &rid, nil
}
