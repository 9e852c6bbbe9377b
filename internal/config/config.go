package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Auth backends understood by the bootstrap.
const (
	AuthBackendSurreal = "surreal"
	AuthBackendMemory  = "memory"
)

// Provider exposes the resolved configuration to the rest of the application.
// Components depend on this interface so tests can supply partial fakes.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetAuthBackend() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetSignOutTimeout() time.Duration
	GetDashboardLayout() string
	GetImageBaseURL() string
	GetStaticDir() string
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr        string        `env:"APP_ADDR" envDefault:":8080" validate:"required"`
	AppBaseURL     string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	SessionSecret  string        `env:"SESSION_SECRET" validate:"required,min=16"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	AuthBackend    string        `env:"AUTH_BACKEND" envDefault:"surreal" validate:"oneof=surreal memory"`
	DBUrl          string        `env:"SURREAL_URL" validate:"required_if=AuthBackend surreal"`
	DBNs           string        `env:"SURREAL_NS" validate:"required_if=AuthBackend surreal"`
	DBDb           string        `env:"SURREAL_DB" validate:"required_if=AuthBackend surreal"`
	DBUser         string        `env:"SURREAL_USER"`
	DBPass         string        `env:"SURREAL_PASS"`
	SignOutTimeout time.Duration `env:"SIGNOUT_TIMEOUT" envDefault:"5s"`
	Layout         string        `env:"DASHBOARD_LAYOUT" envDefault:"collapsible" validate:"oneof=fixed collapsible"`
	ImageBaseURL   string        `env:"IMAGE_BASE_URL" envDefault:"https://picsum.photos" validate:"required,url"`
	StaticDir      string        `env:"STATIC_DIR"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"debug" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// New loads configuration from an optional .env file and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the environment into a Config and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustNew is New for entrypoints where a bad configuration is fatal.
func MustNew() *Config {
	cfg, err := New()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// Validate checks field constraints that the struct tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if c.SessionTTL <= 0 {
		return errors.New("validate config: SESSION_TTL must be positive")
	}
	if c.SignOutTimeout <= 0 {
		return errors.New("validate config: SIGNOUT_TIMEOUT must be positive")
	}
	return nil
}

// Redacted returns the configuration as printable key/value pairs with secrets masked.
func (c *Config) Redacted() map[string]string {
	return map[string]string{
		"APP_ADDR":         c.AppAddr,
		"APP_BASE_URL":     c.AppBaseURL,
		"SESSION_SECRET":   mask(c.SessionSecret),
		"SESSION_TTL":      c.SessionTTL.String(),
		"AUTH_BACKEND":     c.AuthBackend,
		"SURREAL_URL":      redactURL(c.DBUrl),
		"SURREAL_NS":       c.DBNs,
		"SURREAL_DB":       c.DBDb,
		"SURREAL_USER":     c.DBUser,
		"SURREAL_PASS":     mask(c.DBPass),
		"SIGNOUT_TIMEOUT":  c.SignOutTimeout.String(),
		"DASHBOARD_LAYOUT": c.Layout,
		"IMAGE_BASE_URL":   c.ImageBaseURL,
		"STATIC_DIR":       c.StaticDir,
		"LOG_FORMAT":       c.LogFormat,
		"LOG_LEVEL":        c.LogLevel,
	}
}

func (c *Config) GetAppAddr() string               { return c.AppAddr }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration     { return c.SessionTTL }
func (c *Config) GetAuthBackend() string           { return c.AuthBackend }
func (c *Config) GetDBURL() string                 { return c.DBUrl }
func (c *Config) GetDBNs() string                  { return c.DBNs }
func (c *Config) GetDBDb() string                  { return c.DBDb }
func (c *Config) GetDBUser() string                { return c.DBUser }
func (c *Config) GetDBPass() string                { return c.DBPass }
func (c *Config) GetSignOutTimeout() time.Duration { return c.SignOutTimeout }
func (c *Config) GetDashboardLayout() string       { return c.Layout }
func (c *Config) GetImageBaseURL() string          { return c.ImageBaseURL }
func (c *Config) GetStaticDir() string             { return c.StaticDir }
func (c *Config) GetLogFormat() string             { return c.LogFormat }
func (c *Config) GetLogLevel() string              { return c.LogLevel }

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "*****"
}

// redactURL hides the password portion of a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	return u.Redacted()
}
