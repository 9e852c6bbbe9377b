package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/nfrund/taskboard/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// userRecord is the row shape of the user table. The password hash never
// leaves the database: every SELECT below names its columns.
type userRecord struct {
	ID    *surrealmodels.RecordID `json:"id,omitempty"`
	Email string                  `json:"email"`
	Name  *string                 `json:"name,omitempty"`
}

func (r *userRecord) toDomain() *domain.User {
	u := &domain.User{Email: r.Email}
	if r.ID != nil {
		u.ID = r.ID.String()
	}
	if r.Name != nil {
		u.Name = *r.Name
	}
	return u
}

// UserStore encapsulates database operations for users.
type UserStore struct {
	db *surrealdb.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *surrealdb.DB) *UserStore {
	return &UserStore{db: db}
}

// FindUserByEmail queries for a single user by their email address.
// It returns nil, nil when no user matches.
func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	rec, err := QueryOne[userRecord](ctx, s.db, "SELECT id, email, name FROM user WHERE email = $email", map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return rec.toDomain(), nil
}

// CreateUser stores a new user; the database hashes the password with argon2.
func (s *UserStore) CreateUser(ctx context.Context, email, name, password string) (*domain.User, error) {
	existing, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	query := `
		CREATE user SET
			email = $email,
			name = $name,
			password = crypto::argon2::generate($password)
		RETURN id, email, name
	`
	rec, err := QueryOne[userRecord](ctx, s.db, query, map[string]any{
		"email":    email,
		"name":     namePtr,
		"password": password,
	})
	if err != nil {
		// A unique index on email turns a lost race into this error.
		if strings.Contains(err.Error(), "already contains") {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("failed to create user: no record returned")
	}
	return rec.toDomain(), nil
}

// VerifyCredentials returns the user whose email and password match.
func (s *UserStore) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	query := `
		SELECT id, email, name FROM user
		WHERE email = $email AND crypto::argon2::compare(password, $password)
	`
	rec, err := QueryOne[userRecord](ctx, s.db, query, map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return rec.toDomain(), nil
}
