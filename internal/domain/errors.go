package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common failures.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrNotFound           = errors.New("requested resource not found")

	// ErrSessionNotFound is returned when a token does not resolve to a live session.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrTerminationFailed wraps any failure to end a session with the provider.
	ErrTerminationFailed = errors.New("session termination failed")

	// ErrInvalidFilter is returned for a filter outside the fixed set.
	ErrInvalidFilter = errors.New("invalid filter")
)
