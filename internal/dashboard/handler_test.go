package dashboard_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/dashboard"
	"github.com/nfrund/taskboard/internal/handlers"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/rendering"
	"github.com/nfrund/taskboard/internal/testutils"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/nfrund/taskboard/internal/view"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-secret-key-for-testing-!"

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, msg pubsub.Message) error { return nil }
func (nopPublisher) Close() error                                          { return nil }

// brokenEnder fails every termination request.
type brokenEnder struct{}

func (brokenEnder) End(ctx context.Context, token string) error {
	return errors.New("provider unreachable")
}

// unreliableProvider resumes sessions normally but cannot end them.
type unreliableProvider struct {
	*auth.MemoryProvider
}

func (p unreliableProvider) Resume(ctx context.Context, token string) (*auth.Session, error) {
	sess, err := p.MemoryProvider.Resume(ctx, token)
	if err != nil {
		return nil, err
	}
	return auth.NewSession(sess.User(), sess.Token(), sess.ExpiresAt(), brokenEnder{}), nil
}

type testApp struct {
	e        *echo.Echo
	provider *auth.MemoryProvider
	token    string
}

func newTestApp(t *testing.T, layout string, wrap func(*auth.MemoryProvider) auth.Provider) *testApp {
	t.Helper()
	ctx := context.Background()

	mem := auth.NewMemoryProvider(time.Hour)
	sess := testutils.SignedIn(t, mem, "ada@example.com", "Ada")

	var provider auth.Provider = mem
	if wrap != nil {
		provider = wrap(mem)
	}

	i := do.New()
	do.ProvideValue[config.Provider](i, &config.Config{
		SignOutTimeout: time.Second,
		Layout:         layout,
		ImageBaseURL:   "https://img.test",
	})
	do.ProvideValue[pubsub.Publisher](i, nopPublisher{})
	do.ProvideValue(i, slog.Default())
	do.ProvideValue(i, topicmgr.NewRegistry())

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSecret))))
	e.Use(middleware.Session(provider))
	e.GET("/", func(c echo.Context) error {
		f := view.GetFlashData(c)
		return c.String(http.StatusOK, strings.Join(append(f.Success, f.Error...), "|"))
	})

	m := dashboard.New()
	require.NoError(t, m.Register(i))
	require.NoError(t, m.Boot(ctx, e.Group(""), i))

	return &testApp{e: e, provider: mem, token: sess.Token()}
}

func (a *testApp) serve(req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	if signedIn {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: a.token})
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func TestDashboard_Get(t *testing.T) {
	app := newTestApp(t, "collapsible", nil)

	t.Run("renders the initial state", func(t *testing.T) {
		rec := app.serve(httptest.NewRequest(http.MethodGet, "/dashboard", nil), true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Dashboard - Taskboard</title>")
		assert.Contains(t, body, "Welcome Back, Ada!")
		assert.Contains(t, body, `value="All" selected`)
		assert.Contains(t, body, `id="state-sidebar" name="sidebar" value="closed"`)
		assert.NotContains(t, body, "sidebar-overlay")
	})

	t.Run("state in the query string is rendered back", func(t *testing.T) {
		rec := app.serve(httptest.NewRequest(http.MethodGet, "/dashboard?filter=Completed&sidebar=open", nil), true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="Completed" selected`)
		assert.Contains(t, rec.Body.String(), "sidebar-overlay")
	})

	t.Run("anonymous visitors go to the entry path", func(t *testing.T) {
		rec := app.serve(httptest.NewRequest(http.MethodGet, "/dashboard", nil), false)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestDashboard_Filter(t *testing.T) {
	app := newTestApp(t, "collapsible", nil)

	t.Run("selecting a filter keeps the sidebar", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/filter", url.Values{"filter": {"Active"}, "sidebar": {"open"}}), true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, `<div id="dashboard"`), "fragment only")
		assert.Contains(t, body, `value="Active" selected`)
		assert.Contains(t, body, `value="open"`)
	})

	t.Run("unknown filter is rejected", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/filter", url.Values{"filter": {"Archived"}}), true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing filter is rejected", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/filter", url.Values{"sidebar": {"closed"}}), true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDashboard_Sidebar(t *testing.T) {
	app := newTestApp(t, "collapsible", nil)

	t.Run("toggle opens a closed sidebar", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/sidebar/toggle", url.Values{"filter": {"Completed"}, "sidebar": {"closed"}}), true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "sidebar-open")
		assert.Contains(t, body, "sidebar-overlay")
		assert.Contains(t, body, `value="Completed" selected`)
	})

	t.Run("toggle closes an open sidebar", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/sidebar/toggle", url.Values{"filter": {"All"}, "sidebar": {"open"}}), true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "sidebar-overlay")
	})

	t.Run("close is idempotent", func(t *testing.T) {
		for _, current := range []string{"open", "closed"} {
			rec := app.serve(testutils.FormRequest("/dashboard/sidebar/close", url.Values{"filter": {"All"}, "sidebar": {current}}), true)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `id="state-sidebar" name="sidebar" value="closed"`)
		}
	})

	t.Run("invalid sidebar value is rejected", func(t *testing.T) {
		rec := app.serve(testutils.FormRequest("/dashboard/sidebar/toggle", url.Values{"sidebar": {"sideways"}}), true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDashboard_SignOut(t *testing.T) {
	t.Run("ends the session and lands on the entry path", func(t *testing.T) {
		app := newTestApp(t, "fixed", nil)
		require.Equal(t, 1, app.provider.ActiveSessions())

		rec := app.serve(httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil), true)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Zero(t, app.provider.ActiveSessions())

		authCookie := testutils.Cookie(rec.Result(), middleware.SessionCookieName)
		require.NotNil(t, authCookie)
		assert.Equal(t, -1, authCookie.MaxAge)

		flash := testutils.Cookie(rec.Result(), "flash-session")
		require.NotNil(t, flash)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(flash)
		assert.Equal(t, dashboard.NoticeSignedOut, app.serve(req, false).Body.String())
	})

	t.Run("htmx requests are redirected with HX-Redirect", func(t *testing.T) {
		app := newTestApp(t, "fixed", nil)
		req := httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil)
		req.Header.Set("HX-Request", "true")

		rec := app.serve(req, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
		assert.Zero(t, app.provider.ActiveSessions())
	})

	t.Run("a failed termination still navigates and shows a notice", func(t *testing.T) {
		app := newTestApp(t, "fixed", func(m *auth.MemoryProvider) auth.Provider {
			return unreliableProvider{MemoryProvider: m}
		})

		rec := app.serve(httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil), true)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		flash := testutils.Cookie(rec.Result(), "flash-session")
		require.NotNil(t, flash)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(flash)
		assert.Equal(t, dashboard.NoticeTerminationFailed, app.serve(req, false).Body.String())
	})

	t.Run("signing out without a session still lands on the entry path", func(t *testing.T) {
		app := newTestApp(t, "fixed", nil)

		rec := app.serve(httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil), false)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, 1, app.provider.ActiveSessions())
	})

	t.Run("second sign-out after the first is harmless", func(t *testing.T) {
		app := newTestApp(t, "fixed", nil)

		first := app.serve(httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil), true)
		second := app.serve(httptest.NewRequest(http.MethodPost, "/dashboard/sign-out", nil), true)

		assert.Equal(t, http.StatusSeeOther, first.Code)
		assert.Equal(t, http.StatusSeeOther, second.Code)
		assert.Equal(t, "/", second.Header().Get("Location"))
	})
}

func TestDashboard_UserWithoutName(t *testing.T) {
	app := newTestApp(t, "fixed", nil)
	sess := testutils.SignedIn(t, app.provider, "nameless@example.com", "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sess.Token()})
	rec := app.serve(req, false)

	assert.Contains(t, rec.Body.String(), "Welcome Back, nameless@example.com!")
}
