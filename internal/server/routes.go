package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/handlers"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/samber/do/v2"
)

// RegisterRoutes sets up the entry page, the sign-in forms and the health check.
// Dashboard routes are mounted by their module.
func (s *Server) RegisterRoutes() {
	homeHandler := handlers.NewHomeHandler()
	authHandler := handlers.NewAuthHandler(do.MustInvoke[auth.Provider](s.injector))
	rateLimiter := middleware.RateLimiter(10, time.Minute)

	s.E.GET("/", homeHandler.HomeGet)
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.POST("/register", authHandler.RegisterPost, rateLimiter)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}

// Route is one entry of the route table.
type Route struct {
	Method string
	Path   string
}

// Routes lists the registered routes sorted by path, then method.
func (s *Server) Routes() []Route {
	var out []Route
	for _, r := range s.E.Routes() {
		if r.Method == echo.RouteNotFound {
			continue
		}
		out = append(out, Route{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Topics lists the event topics the booted modules declared.
func (s *Server) Topics() []topicmgr.Topic {
	return do.MustInvoke[*topicmgr.Registry](s.injector).List()
}
