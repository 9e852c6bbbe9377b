package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/taskboard/internal/assets"
	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/handlers"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/module"
	"github.com/nfrund/taskboard/internal/rendering"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E *echo.Echo

	cfg      config.Provider
	logger   *slog.Logger
	injector *do.RootScope
	modules  []module.Module
	closers  []func(context.Context) error
}

// New wires the application: core services, middleware, routes and modules.
// ctx bounds startup work such as connecting to the database.
func New(ctx context.Context, cfg config.Provider, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		E:        e,
		cfg:      cfg,
		logger:   logger,
		injector: do.New(),
		modules:  AppModules(),
	}

	if err := s.provideCore(ctx); err != nil {
		s.closeAll(ctx)
		return nil, err
	}

	store, err := assets.New(cfg.GetStaticDir())
	if err != nil {
		s.closeAll(ctx)
		return nil, err
	}

	s.setupMiddleware()
	assets.Mount(e, store)
	s.RegisterRoutes()

	if err := s.bootModules(ctx); err != nil {
		s.closeAll(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.E.Renderer = rendering.NewUniversalRenderer()
	s.E.Validator = handlers.NewValidator()
	s.E.HTTPErrorHandler = handlers.HTTPErrorHandler

	s.E.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	s.E.Use(middleware.Logger)
	s.E.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(s.cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	s.E.Use(session.Middleware(store))
	s.E.Use(middleware.Session(do.MustInvoke[auth.Provider](s.injector)))
}

func (s *Server) bootModules(ctx context.Context) error {
	for _, m := range s.modules {
		if err := m.Register(s.injector); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	router := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, router, s.injector); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.logger.Debug("Module booted", "module", m.Name())
	}
	return nil
}

// closeAll releases core services in reverse order of acquisition.
func (s *Server) closeAll(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
