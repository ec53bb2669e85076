package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/server/assistant"
	"strings"
)

type chatRequest struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"systemInstruction"`
}

type chatResponse struct {
	Text string `json:"text"`
}

type summaryRequest struct {
	Title   string `json:"title"`
	Pastor  string `json:"pastor"`
	Passage string `json:"passage"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (a *App) Chat(c echo.Context) error {
	rctx := c.Request().Context()

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind chat body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing prompt")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return a.er(c, http.StatusBadRequest, "Missing prompt")
	}

	text, err := a.ai.Generate(rctx, req.Prompt, req.SystemInstruction)
	if err != nil {
		return a.assistantError(c, err)
	}

	return c.JSON(http.StatusOK, &chatResponse{Text: text})
}

func (a *App) Summary(c echo.Context) error {
	rctx := c.Request().Context()

	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind summary body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing sermon title")
	}
	if strings.TrimSpace(req.Title) == "" {
		return a.er(c, http.StatusBadRequest, "Missing sermon title")
	}

	summary, err := a.ai.Generate(rctx, assistant.SummaryPrompt(req.Title, req.Pastor, req.Passage), "")
	if err != nil {
		return a.assistantError(c, err)
	}

	return c.JSON(http.StatusOK, &summaryResponse{Summary: summary})
}

func (a *App) assistantError(c echo.Context, err error) error {
	var missing *assistant.MissingCredentialError
	if errors.As(err, &missing) {
		a.l.Error("assistant credential missing", zap.Strings("probed", missing.Probed))
		res := &errorMessage{Error: "Server Configuration Error: API Key Missing"}
		if !a.cfg.System.IsProd {
			res.Details = missing.Probed
		}
		return c.JSON(http.StatusInternalServerError, res)
	}

	a.l.Error("assistant request failed", zap.Error(err))
	return a.er(c, http.StatusBadGateway, "Failed to generate response")
}
