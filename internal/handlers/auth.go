package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/auth"
	"github.com/nfrund/taskboard/internal/domain"
	"github.com/nfrund/taskboard/internal/middleware"
	"github.com/nfrund/taskboard/internal/view"
)

const (
	entryPath     = "/"
	dashboardPath = "/dashboard"
)

// AuthHandler handles the sign-in and registration forms.
type AuthHandler struct {
	provider auth.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider auth.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// LoginPost handles the sign-in form (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return h.loginFailed(c, req.Email)
	}
	if err := c.Validate(&req); err != nil {
		return h.loginFailed(c, req.Email)
	}

	sess, err := h.provider.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			middleware.FromContext(c.Request().Context()).Error("Sign-in failed", "error", err)
		}
		return h.loginFailed(c, req.Email)
	}

	middleware.SetSessionCookie(c, sess.Token(), sess.ExpiresAt())
	view.SetFlashSuccess(c, "Signed in successfully.")
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *AuthHandler) loginFailed(c echo.Context, email string) error {
	middleware.FromContext(c.Request().Context()).Warn("Failed login attempt", "email", email)
	view.SetFlashError(c, "Invalid email or password.")
	if email != "" {
		view.SetFlashEmail(c, email)
	}
	return c.Redirect(http.StatusSeeOther, entryPath)
}

// RegisterPost handles the registration form (POST /register). A new account
// is signed in straight away.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, "Could not read the registration form.")
		return c.Redirect(http.StatusSeeOther, entryPath)
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, registrationMessage(err))
		return c.Redirect(http.StatusSeeOther, entryPath)
	}

	ctx := c.Request().Context()
	if _, err := h.provider.SignUp(ctx, req.Email, req.Name, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			view.SetFlashError(c, "A user with this email already exists.")
		} else {
			middleware.FromContext(ctx).Error("Error creating user", "error", err)
			view.SetFlashError(c, "Could not create your account.")
		}
		return c.Redirect(http.StatusSeeOther, entryPath)
	}

	sess, err := h.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		middleware.FromContext(ctx).Error("Sign-in after registration failed", "error", err)
		view.SetFlashSuccess(c, "Account created. Please sign in.")
		return c.Redirect(http.StatusSeeOther, entryPath)
	}

	middleware.SetSessionCookie(c, sess.Token(), sess.ExpiresAt())
	view.SetFlashSuccess(c, "Account created successfully!")
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

// registrationMessage picks a user-facing message for the first failed rule.
func registrationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the registration form."
	}
	switch fe := verrs[0]; fe.Field() {
	case "Email":
		return "Please enter a valid email address."
	case "Password":
		return "Password must be at least 8 characters long."
	case "PasswordConfirm":
		return "Passwords do not match."
	case "Name":
		return "Name must be at most 80 characters."
	default:
		return "Please check the registration form."
	}
}
