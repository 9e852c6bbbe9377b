package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/domain"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/view"
)

// stateForm is the UI state as it travels in query strings and htmx form posts.
type stateForm struct {
	Filter  string `query:"filter" form:"filter" validate:"omitempty,oneof=All Active Completed"`
	Sidebar string `query:"sidebar" form:"sidebar" validate:"omitempty,oneof=open closed"`
}

func (f stateForm) state() State {
	s := NewState()
	if f.Filter != "" {
		s.Filter = Filter(f.Filter)
	}
	s.SidebarOpen = f.Sidebar == sidebarOpen
	return s
}

// Handler serves the dashboard routes.
type Handler struct {
	signOut *SignOut
	layout  LayoutConfig
}

// NewHandler creates a new Handler.
func NewHandler(signOut *SignOut, layout LayoutConfig) *Handler {
	return &Handler{signOut: signOut, layout: layout}
}

// Get renders the full dashboard page (GET /dashboard).
func (h *Handler) Get(c echo.Context) error {
	form, err := bindState(c)
	if err != nil {
		return err
	}

	sess := middleware.SessionFrom(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, EntryPath)
	}

	page := Shell(sess.User(), form.state(), h.layout)
	return c.Render(http.StatusOK, "", view.Base("Dashboard", view.GetFlashData(c), view.Component(page)))
}

// SetFilter handles the filter select (POST /dashboard/filter).
func (h *Handler) SetFilter(c echo.Context) error {
	form, err := bindState(c)
	if err != nil {
		return err
	}
	filter, err := ParseFilter(form.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.renderShell(c, form.state().SetFilter(filter))
}

// ToggleSidebar handles the menu button (POST /dashboard/sidebar/toggle).
func (h *Handler) ToggleSidebar(c echo.Context) error {
	form, err := bindState(c)
	if err != nil {
		return err
	}
	return h.renderShell(c, form.state().ToggleSidebar())
}

// CloseSidebar handles navigation items and the overlay (POST /dashboard/sidebar/close).
func (h *Handler) CloseSidebar(c echo.Context) error {
	form, err := bindState(c)
	if err != nil {
		return err
	}
	return h.renderShell(c, form.state().CloseSidebar())
}

// SignOut ends the session and sends the browser to the entry path, whatever
// the provider answered (POST /dashboard/sign-out).
func (h *Handler) SignOut(c echo.Context) error {
	var handle SessionHandle
	if sess := middleware.SessionFrom(c); sess != nil {
		handle = sess
	}

	outcome := h.signOut.SignOutAndRedirect(c.Request().Context(), handle)
	middleware.ClearSessionCookie(c)

	switch {
	case outcome.Failed():
		view.SetFlashError(c, outcome.Notice)
	case outcome.Notice != "":
		view.SetFlashSuccess(c, outcome.Notice)
	}

	return middleware.Navigate(c, outcome.Redirect)
}

func (h *Handler) renderShell(c echo.Context, state State) error {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return middleware.Navigate(c, EntryPath)
	}
	return c.Render(http.StatusOK, "", Shell(sess.User(), state, h.layout))
}

func bindState(c echo.Context) (stateForm, error) {
	var form stateForm
	if err := c.Bind(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "malformed dashboard state")
	}
	if err := c.Validate(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidFilter.Error()).SetInternal(err)
	}
	return form, nil
}
