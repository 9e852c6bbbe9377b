package domain

import "time"

// User is the signed-in account as seen by the application.
type User struct {
	ID    string
	Email string
	Name  string
}

// DisplayName prefers the user's name and falls back to the email address.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// SessionRecord is a server-side session owned by the authentication provider.
type SessionRecord struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the record is no longer usable at now.
func (r SessionRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
