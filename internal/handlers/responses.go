package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/middleware"
)

// ErrorResponse is the standard format for error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPErrorHandler writes every unhandled error as an ErrorResponse. Internal
// errors are logged and hidden from the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	logger := middleware.FromContext(c.Request().Context())
	if status >= http.StatusInternalServerError {
		logger.Error("Internal Server Error (Unhandled)", "path", c.Path(), "error", err, "stack_trace", string(debug.Stack()))
	} else {
		logger.Debug("Request rejected", "path", c.Path(), "status", status, "error", err)
	}

	resp := ErrorResponse{Code: errorCode(status), Message: message}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}

// errorCode turns a status into a stable snake_case code, e.g. "bad_request".
func errorCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
