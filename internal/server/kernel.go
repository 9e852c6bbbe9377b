package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/database"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/samber/do/v2"
	"github.com/surrealdb/surrealdb.go"
)

// provideCore registers the process-wide services every module may invoke.
func (s *Server) provideCore(ctx context.Context) error {
	i := s.injector
	do.ProvideValue[config.Provider](i, s.cfg)
	do.ProvideValue(i, s.logger)

	bridge := pubsub.NewWatermillBridge()
	s.closers = append(s.closers, func(context.Context) error { return bridge.Close() })
	do.ProvideValue[pubsub.Publisher](i, bridge)
	do.ProvideValue[pubsub.Subscriber](i, bridge)
	do.ProvideValue(i, topicmgr.NewRegistry())

	provider, closeProvider, err := NewAuthProvider(ctx, s.cfg, s.logger)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, closeProvider)
	do.ProvideValue[auth.Provider](i, provider)
	return nil
}

// NewAuthProvider constructs the provider selected by AUTH_BACKEND. The
// returned close function releases its database connection, if any.
func NewAuthProvider(ctx context.Context, cfg config.Provider, logger *slog.Logger) (auth.Provider, func(context.Context) error, error) {
	ttl := cfg.GetSessionTTL()
	noop := func(context.Context) error { return nil }

	switch cfg.GetAuthBackend() {
	case config.AuthBackendMemory:
		logger.Warn("Using in-memory authentication; accounts are lost on restart")
		return auth.NewMemoryProvider(ttl), noop, nil
	case config.AuthBackendSurreal:
		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to database: %w", err)
		}
		provider := auth.NewSurrealProvider(database.NewUserStore(db), database.NewSessionStore(db), ttl)
		return provider, closeDB(db, logger), nil
	default:
		return nil, noop, fmt.Errorf("unknown auth backend %q", cfg.GetAuthBackend())
	}
}

func closeDB(db *surrealdb.DB, logger *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		logger.Info("Closing database connection")
		return db.Close(ctx)
	}
}
