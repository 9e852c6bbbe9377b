package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/module"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/samber/do/v2"
)

// Module mounts the dashboard view and its actions.
type Module struct {
	module.BaseModule
}

// New creates the dashboard module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "dashboard" }

// Register declares the dashboard topics and provides the sign-out flow and
// the handler.
func (m *Module) Register(i do.Injector) error {
	registry, err := do.Invoke[*topicmgr.Registry](i)
	if err != nil {
		return err
	}
	for _, topic := range Topics() {
		if err := registry.Register(topic); err != nil {
			return fmt.Errorf("register topic %s: %w", topic.Name(), err)
		}
	}

	do.Provide(i, func(i do.Injector) (*SignOut, error) {
		cfg, err := do.Invoke[config.Provider](i)
		if err != nil {
			return nil, err
		}
		pub, err := do.Invoke[pubsub.Publisher](i)
		if err != nil {
			return nil, err
		}
		logger, err := do.Invoke[*slog.Logger](i)
		if err != nil {
			return nil, err
		}
		return NewSignOut(pub, cfg.GetSignOutTimeout(), logger), nil
	})

	do.Provide(i, func(i do.Injector) (*Handler, error) {
		cfg, err := do.Invoke[config.Provider](i)
		if err != nil {
			return nil, err
		}
		mode, err := ParseLayoutMode(cfg.GetDashboardLayout())
		if err != nil {
			return nil, err
		}
		signOut, err := do.Invoke[*SignOut](i)
		if err != nil {
			return nil, err
		}
		return NewHandler(signOut, LayoutConfig{Mode: mode, ImageBaseURL: cfg.GetImageBaseURL()}), nil
	})
	return nil
}

// Boot mounts the routes. Sign-out is reachable without a session so a stale
// tab still lands on the entry path.
func (m *Module) Boot(ctx context.Context, router *echo.Group, i do.Injector) error {
	h, err := do.Invoke[*Handler](i)
	if err != nil {
		return err
	}

	g := router.Group("/dashboard")
	g.GET("", h.Get, middleware.RequireSession)
	g.POST("/filter", h.SetFilter, middleware.RequireSession)
	g.POST("/sidebar/toggle", h.ToggleSidebar, middleware.RequireSession)
	g.POST("/sidebar/close", h.CloseSidebar, middleware.RequireSession)
	g.POST("/sign-out", h.SignOut)
	return nil
}
