package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"net/http"
	"regexp"
	"shinkwang-site/app/server/models"
)

// days are keyed like the checklist page builds them: year-month-day without padding
var qtDateKey = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

type qtSaveRequest struct {
	DateKey string          `json:"date_key"`
	Data    json.RawMessage `json:"data"`
}

func (a *App) QTGet(c echo.Context) error {
	rctx := c.Request().Context()

	date := c.QueryParam("date")
	if date == "" {
		return a.er(c, http.StatusBadRequest, "Date parameter is required")
	}
	if !qtDateKey.MatchString(date) {
		return a.er(c, http.StatusBadRequest, "Invalid date parameter")
	}

	var record models.QTRecord
	if err := a.db.WithContext(rctx).First(&record, "date_key = ?", date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// nothing recorded for that day yet
			return c.JSONBlob(http.StatusOK, []byte("null"))
		}
		a.l.Error("failed to get qt record", zap.String("date", date), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSONBlob(http.StatusOK, []byte(record.Data))
}

func (a *App) QTSave(c echo.Context) error {
	rctx := c.Request().Context()

	var req qtSaveRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind qt body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing date_key or data")
	}

	data := bytes.TrimSpace(req.Data)
	if req.DateKey == "" || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return a.er(c, http.StatusBadRequest, "Missing date_key or data")
	}
	if !qtDateKey.MatchString(req.DateKey) {
		return a.er(c, http.StatusBadRequest, "Invalid date_key")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return a.er(c, http.StatusBadRequest, "Invalid data")
	}

	record := models.QTRecord{
		DateKey: req.DateKey,
		Data:    compact.String(),
	}
	if err := a.db.WithContext(rctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error; err != nil {
		a.l.Error("failed to save qt record", zap.String("date", req.DateKey), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, success)
}
