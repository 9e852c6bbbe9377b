package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/view"
	"github.com/nfrund/taskboard/web/src/templates/pages"
)

// HomeHandler serves the entry page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet renders the entry page (GET /) with any pending flash messages.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	flashes := view.GetFlashData(c)

	data := pages.LandingData{Email: view.GetFlashEmail(c)}
	if sess := middleware.SessionFrom(c); sess != nil {
		data.SignedIn = true
		data.UserName = sess.User().DisplayName()
	}

	page := view.Base("Sign in", flashes, view.Component(pages.Landing(data)))
	return c.Render(http.StatusOK, "", page)
}
