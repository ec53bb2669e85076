package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/server/content"
	"strings"
)

type contentUpsertRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (a *App) ContentGet(c echo.Context) error {
	rctx := c.Request().Context()

	all, err := a.cs.GetAll(rctx)
	if err != nil {
		a.l.Error("failed to get content", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, all)
}

func (a *App) ContentUpsert(c echo.Context) error {
	rctx := c.Request().Context()

	var req contentUpsertRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind content body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing key or value")
	}

	value, present := contentValue(req.Value)
	if strings.TrimSpace(req.Key) == "" || !present {
		return a.er(c, http.StatusBadRequest, "Missing key or value")
	}

	if err := a.cs.Upsert(rctx, req.Key, value); err != nil {
		if errors.Is(err, content.ErrMissingKey) {
			return a.er(c, http.StatusBadRequest, "Missing key or value")
		}
		a.l.Error("failed to upsert content", zap.String("key", req.Key), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, success)
}

// contentValue turns the posted value into the stored string. A JSON string is
// stored as its text; anything else is stored as compact JSON.
func contentValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, true
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed), true
	}
	return buf.String(), true
}
