package view_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/view"
	"github.com/stretchr/testify/assert"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Run a dummy handler through the session middleware so the context is initialized.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("Set and Get Success Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "It worked!")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"It worked!"}, flashes.Success)
		assert.Empty(t, flashes.Error)

		flashesAfterRead := view.GetFlashData(c)
		assert.True(t, flashesAfterRead.Empty(), "Flashes should be cleared after being read")
	})

	t.Run("Set and Get Error Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashError(c, "It failed!")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"It failed!"}, flashes.Error)
		assert.Empty(t, flashes.Success)
	})

	t.Run("GetFlashData with no flashes set", func(t *testing.T) {
		c, _ := setupTestContext()

		assert.True(t, view.GetFlashData(c).Empty())
	})

	t.Run("remembered email is read once", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashEmail(c, "ada@example.com")
		assert.Equal(t, "ada@example.com", view.GetFlashEmail(c))
		assert.Equal(t, "", view.GetFlashEmail(c))
	})

	t.Run("missing session middleware is tolerated", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		view.SetFlashSuccess(c, "dropped")
		assert.True(t, view.GetFlashData(c).Empty())
	})
}

func TestSetFlash_SaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c, rec := setupTestContext()

	// Too large for a cookie, so the store refuses to encode it.
	view.SetFlashError(c, strings.Repeat("x", 5000))

	assert.Contains(t, buf.String(), "Failed to save flash session")
	assert.Empty(t, rec.Result().Cookies())
}
