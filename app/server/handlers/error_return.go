package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

type errorMessage struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type successMessage struct {
	Success bool `json:"success"`
}

var success = &successMessage{Success: true}

// er writes {"error": ...}; the message defaults to the status text.
func (a *App) er(c echo.Context, statusCode int, message ...string) error {
	msg := http.StatusText(statusCode)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return c.JSON(statusCode, &errorMessage{Error: msg})
}

// HTTPErrorHandler keeps router errors (404, 405, ...) in the same JSON shape.
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code == http.StatusMethodNotAllowed {
			msg = "Method not allowed"
		} else if m, isStr := he.Message.(string); isStr {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		a.l.Error("unhandled error", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, &errorMessage{Error: msg})
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
