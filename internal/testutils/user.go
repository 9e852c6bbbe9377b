package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nfrund/taskboard/internal/auth"
)

// TestPassword is the password every helper-created user signs in with.
const TestPassword = "password123"

// UniqueEmail returns an address no other test run will use.
func UniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString() + "@example.com"
}

// SignedIn registers a user with provider and opens a session for it.
func SignedIn(t *testing.T, provider auth.Provider, email, name string) *auth.Session {
	t.Helper()
	ctx := context.Background()

	if _, err := provider.SignUp(ctx, email, name, TestPassword); err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	sess, err := provider.SignIn(ctx, email, TestPassword)
	if err != nil {
		t.Fatalf("sign in %s: %v", email, err)
	}
	return sess
}
