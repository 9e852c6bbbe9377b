package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/domain"
)

const (
	// SessionContextKey is the echo context key holding the *auth.Session.
	SessionContextKey = "session"
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "auth_token"
)

// Session resolves the session cookie through the provider and stores the
// resulting handle on the context. Requests without a valid session continue
// anonymously. The cookie is cleared only when the provider no longer knows the
// token; other failures leave it for the next request.
func Session(provider auth.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := provider.Resume(c.Request().Context(), cookie.Value)
			if errors.Is(err, domain.ErrSessionNotFound) {
				ClearSessionCookie(c)
				return next(c)
			}
			if err != nil {
				FromContext(c.Request().Context()).Warn("Failed to resume session", "error", err)
				return next(c)
			}

			c.Set(SessionContextKey, sess)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to the entry path.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if SessionFrom(c) == nil {
			return Navigate(c, "/")
		}
		return next(c)
	}
}

// Navigate sends the browser to path. htmx requests get an HX-Redirect header
// so the whole page is replaced instead of being swapped into the target.
func Navigate(c echo.Context, path string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// SessionFrom returns the session placed by Session, or nil.
func SessionFrom(c echo.Context) *auth.Session {
	sess, _ := c.Get(SessionContextKey).(*auth.Session)
	return sess
}

// SetSessionCookie stores token in the session cookie until expires.
func SetSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(sessionCookie(c, token, expires))
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c echo.Context) {
	cookie := sessionCookie(c, "", time.Time{})
	cookie.MaxAge = -1
	c.SetCookie(cookie)
}

func sessionCookie(c echo.Context, token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		// Secure only when served over TLS so local development keeps working.
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
