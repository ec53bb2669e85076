package handlers

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"strconv"
)

const headerPageMax = "X-Page-Max"

// listParams are the optional paging query params of list endpoints.
type listParams struct {
	Page  *uint `query:"page"`
	Limit *uint `query:"limit"`
}

func (a *App) parsePagination(page *uint, limit *uint) (bool, int, int) {
	if (page == nil && limit == nil) || (page != nil && *page == 0 && limit != nil && *limit == 0) {
		// no paging asked for, or the explicit "everything" form
		return true, -1, -1
	}
	// in: 1-based page and page size; out: 0-based page and page size
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else {
		parsedPage = *page - 1
	}

	if limit == nil || *limit <= 0 {
		parsedLimit = 100
	} else {
		parsedLimit = *limit
	}

	return false, int(parsedPage), int(parsedLimit)
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}

// paginate applies the paging params to q and reports the page count in a header.
func (a *App) paginate(c echo.Context, q *gorm.DB, params listParams) (*gorm.DB, error) {
	showAll, page, limit := a.parsePagination(params.Page, params.Limit)
	if showAll {
		return q, nil
	}

	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}
	c.Response().Header().Set(headerPageMax, strconv.FormatInt(a.calcMaxPage(count, showAll, limit), 10))

	return q.Limit(limit).Offset(page * limit), nil
}
