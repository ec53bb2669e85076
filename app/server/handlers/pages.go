package handlers

import (
	"context"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"shinkwang-site/app/sections"
	"shinkwang-site/app/server/middlewares"
	"shinkwang-site/app/server/pages"
	"strconv"
	"strings"
)

// loadContent never fails: when the store is unreachable every section falls
// back to its default. Read-only renders only; edits use GetAll directly.
func (a *App) loadContent(ctx context.Context) map[string]string {
	all, err := a.cs.GetAll(ctx)
	if err != nil {
		a.l.Error("failed to load content, rendering defaults", zap.Error(err))
		return map[string]string{}
	}
	return all
}

func (a *App) render(c echo.Context, name, title string, data any) error {
	_, isAdmin := middlewares.Session(c)
	return c.Render(http.StatusOK, name, &pages.Page{
		Name:   name,
		Title:  title,
		Admin:  isAdmin,
		Notice: c.QueryParam("notice"),
		Error:  c.QueryParam("error"),
		Data:   data,
	})
}

func (a *App) PageHome(c echo.Context) error {
	return a.render(c, pages.Home, "홈", sections.LoadHome(a.loadContent(c.Request().Context())))
}

func (a *App) PageWorship(c echo.Context) error {
	return a.render(c, pages.Worship, "예배 안내", sections.LoadWorship(a.loadContent(c.Request().Context())))
}

func (a *App) PageOnline(c echo.Context) error {
	active, _ := strconv.ParseInt(c.QueryParam("sermon"), 10, 64)
	return a.render(c, pages.Online, "온라인 예배", sections.LoadOnline(a.loadContent(c.Request().Context()), active))
}

func (a *App) PagePastor(c echo.Context) error {
	return a.render(c, pages.Pastor, "담임목사 인사말", sections.Pastor.From(a.loadContent(c.Request().Context())))
}

// AdminEnter is the form flavour of AdminSessionCreate.
func (a *App) AdminEnter(c echo.Context) error {
	back := returnPath(c.FormValue("return"))

	secret := c.FormValue("secret")
	if strings.TrimSpace(secret) == "" {
		return redirectWith(c, back, "error", "비밀번호를 입력해 주세요.")
	}

	_, _, ok, err := a.openSession(c, secret)
	if err != nil {
		a.l.Error("failed to open admin session", zap.Error(err))
		return redirectWith(c, back, "error", "잠시 후 다시 시도해 주세요.")
	}
	if !ok {
		a.l.Info("admin secret rejected", zap.String("ip", c.RealIP()))
		return redirectWith(c, back, "error", "비밀번호가 올바르지 않습니다.")
	}

	return redirectWith(c, back, "notice", "관리자 모드가 활성화되었습니다.")
}

// AdminExit is the form flavour of AdminSessionDelete.
func (a *App) AdminExit(c echo.Context) error {
	back := returnPath(c.FormValue("return"))

	if err := a.closeSession(c); err != nil {
		a.l.Error("failed to close admin session", zap.Error(err))
	}

	return redirectWith(c, back, "notice", "관리자 모드가 종료되었습니다.")
}

// returnPath maps a page name (or a local path) to a path on this site.
func returnPath(page string) string {
	switch page {
	case pages.Worship, "/worship":
		return "/worship"
	case pages.Online, "/online":
		return "/online"
	case pages.Pastor, "/pastor":
		return "/pastor"
	default:
		return "/"
	}
}

func redirectWith(c echo.Context, path, kind, message string) error {
	q := url.Values{}
	q.Set(kind, message)
	return c.Redirect(http.StatusSeeOther, path+"?"+q.Encode())
}
