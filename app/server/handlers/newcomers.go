package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"shinkwang-site/app/server/models"
	"shinkwang-site/app/server/utils"
	"strings"
)

type newcomerInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	BirthDate   string `json:"birth_date"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (a *App) newcomerMapFields(req *newcomerInput, n *models.Newcomer) {
	n.Name = strings.TrimSpace(req.Name)
	n.Phone = req.Phone
	n.BirthDate = req.BirthDate
	n.Address = req.Address
	n.Description = req.Description
}

func (a *App) NewcomerList(c echo.Context) error {
	rctx := c.Request().Context()

	var params listParams
	if err := c.Bind(&params); err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	q, err := a.paginate(c, a.db.WithContext(rctx).Model(&models.Newcomer{}), params)
	if err != nil {
		a.l.Error("failed to count newcomers", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	newcomers := []models.Newcomer{}
	if err := q.Order("registration_date DESC").Order("id DESC").Find(&newcomers).Error; err != nil {
		a.l.Error("failed to get newcomer list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, newcomers)
}

func (a *App) NewcomerCreate(c echo.Context) error {
	rctx := c.Request().Context()

	var req newcomerInput
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind newcomer body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Name is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return a.er(c, http.StatusBadRequest, "Name is required")
	}

	var newcomer models.Newcomer
	a.newcomerMapFields(&req, &newcomer)

	if err := a.db.WithContext(rctx).Create(&newcomer).Error; err != nil {
		a.l.Error("failed to create newcomer", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, success)
}

func (a *App) NewcomerUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	var req newcomerInput
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind newcomer body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "ID and Name are required")
	}

	if req.ID == 0 || strings.TrimSpace(req.Name) == "" {
		return a.er(c, http.StatusBadRequest, "ID and Name are required")
	}

	var newcomer models.Newcomer
	a.newcomerMapFields(&req, &newcomer)

	// registration date is never rewritten
	res := a.db.WithContext(rctx).
		Model(&models.Newcomer{}).
		Where("id = ?", req.ID).
		Select("name", "phone", "birth_date", "address", "description").
		Updates(&newcomer)
	if res.Error != nil {
		a.l.Error("failed to update newcomer", zap.Uint("id", req.ID), zap.Error(res.Error))
		return a.er(c, http.StatusInternalServerError)
	}
	if res.RowsAffected == 0 {
		return a.er(c, http.StatusNotFound, "Newcomer not found")
	}

	return c.JSON(http.StatusOK, success)
}

func (a *App) NewcomerDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := queryID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "ID is required")
	}

	if err := a.db.WithContext(rctx).Delete(&models.Newcomer{}, id).Error; err != nil {
		a.l.Error("failed to delete newcomer", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, success)
}

func queryID(c echo.Context) (uint, error) {
	return utils.ParseID(c.QueryParam("id"))
}
