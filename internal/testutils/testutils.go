// Package testutils holds helpers shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/taskboard/internal/config"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// ConfigForTests loads .env.test from the project root when present, fills in
// a session secret, and returns the parsed configuration.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()

	loadTestEnv(t)
	if os.Getenv("SESSION_SECRET") == "" {
		t.Setenv("SESSION_SECRET", testSessionSecret)
	}

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

// SurrealConfigForTests is ConfigForTests for integration tests against
// SurrealDB. It skips the test in short mode or when no database is configured.
func SurrealConfigForTests(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	loadTestEnv(t)
	if os.Getenv("SURREAL_URL") == "" {
		t.Skip("SURREAL_URL not set")
	}
	t.Setenv("AUTH_BACKEND", config.AuthBackendSurreal)
	return ConfigForTests(t)
}

// loadTestEnv copies .env.test from the project root into the test's environment.
func loadTestEnv(t *testing.T) {
	t.Helper()
	root, ok := projectRoot()
	if !ok {
		return
	}
	env, err := godotenv.Read(filepath.Join(root, ".env.test"))
	if err != nil {
		return
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
}

// projectRoot walks up from the working directory to the directory holding go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
