package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"regexp"
	"shinkwang-site/app/sections"
	"shinkwang-site/app/server/pages"
	"shinkwang-site/app/server/utils"
	"strings"
)

var blankLines = regexp.MustCompile(`\r?\n\s*\r?\n`)

func (a *App) sectionSaved(c echo.Context, key string, err error) error {
	back := pages.PathOf(key)
	if err != nil {
		if errors.Is(err, sections.ErrRowNotFound) {
			return redirectWith(c, back, "error", "해당 항목을 찾을 수 없습니다.")
		}
		a.l.Error("failed to save section", zap.String("key", key), zap.Error(err))
		return redirectWith(c, back, "error", "저장에 실패했습니다.")
	}
	return redirectWith(c, back, "notice", "저장되었습니다.")
}

// contentUnavailable aborts an edit whose current value could not be read.
func (a *App) contentUnavailable(c echo.Context, key string, err error) error {
	a.l.Error("failed to load content for edit", zap.String("key", key), zap.Error(err))
	return redirectWith(c, pages.PathOf(key), "error", "현재 내용을 불러오지 못해 저장하지 않았습니다.")
}

// SectionSave replaces a text or object section from its edit form.
func (a *App) SectionSave(c echo.Context) error {
	rctx := c.Request().Context()
	key := c.Param("key")

	d, ok := sections.Lookup(key)
	if !ok {
		return a.er(c, http.StatusNotFound, "Unknown section")
	}

	content, err := a.cs.GetAll(rctx)
	if err != nil {
		return a.contentUnavailable(c, key, err)
	}

	switch d.Kind() {
	case sections.KindText:
		text, isText := d.(sections.Section[string])
		if !isText {
			return a.er(c, http.StatusInternalServerError)
		}
		e := sections.NewEditor(text, content, a.cs)
		return a.sectionSaved(c, key, e.Commit(rctx, c.FormValue("value")))

	case sections.KindObject:
		if d.Key() != sections.Pastor.Key() {
			return a.er(c, http.StatusNotFound, "Unknown section")
		}
		e := sections.NewEditor(sections.Pastor, content, a.cs)
		draft := e.Draft()
		if err := c.Bind(&draft); err != nil {
			return redirectWith(c, pages.PathOf(key), "error", "입력값이 올바르지 않습니다.")
		}
		if raw, exist := c.Request().PostForm["paragraphs"]; exist {
			draft.Paragraphs = splitParagraphs(strings.Join(raw, "\n\n"))
		}
		return a.sectionSaved(c, key, e.Commit(rctx, draft))

	default:
		return redirectWith(c, pages.PathOf(key), "error", "목록 항목은 개별로 편집해 주세요.")
	}
}

// SectionRowSave adds (no id) or updates (with id) one row of a list section.
func (a *App) SectionRowSave(c echo.Context) error {
	key := c.Param("key")

	switch sections.Key(key) {
	case sections.GeneralWorship.Key():
		return saveRow(a, c, sections.GeneralWorship, func(r *sections.WorshipRow) error { return c.Bind(r) })
	case sections.SchoolWorship.Key():
		return saveRow(a, c, sections.SchoolWorship, func(r *sections.WorshipRow) error { return c.Bind(r) })
	case sections.OfferingAccounts.Key():
		return saveRow(a, c, sections.OfferingAccounts, func(r *sections.OfferingAccount) error { return c.Bind(r) })
	case sections.Sermons.Key():
		return saveRow(a, c, sections.Sermons, func(s *sections.Sermon) error {
			if err := c.Bind(s); err != nil {
				return err
			}
			*s = sections.PrepareSermon(*s, c.FormValue("startTime"), c.FormValue("endTime"))
			return nil
		})
	default:
		return a.er(c, http.StatusNotFound, "Unknown list section")
	}
}

// SectionRowDelete removes one row of a list section.
func (a *App) SectionRowDelete(c echo.Context) error {
	key := c.Param("key")

	id, err := utils.ParseRowID(c.Param("id"))
	if err != nil {
		return redirectWith(c, pages.PathOf(key), "error", "잘못된 항목입니다.")
	}

	switch sections.Key(key) {
	case sections.GeneralWorship.Key():
		return deleteRow(a, c, sections.GeneralWorship, id)
	case sections.SchoolWorship.Key():
		return deleteRow(a, c, sections.SchoolWorship, id)
	case sections.OfferingAccounts.Key():
		return deleteRow(a, c, sections.OfferingAccounts, id)
	case sections.Sermons.Key():
		return deleteRow(a, c, sections.Sermons, id)
	default:
		return a.er(c, http.StatusNotFound, "Unknown list section")
	}
}

// methods cannot have type parameters, so these take the App explicitly
func saveRow[T sections.Row[T]](a *App, c echo.Context, list sections.ListSection[T], bind func(*T) error) error {
	rctx := c.Request().Context()
	key := list.Key().String()

	var row T
	if err := bind(&row); err != nil {
		return redirectWith(c, pages.PathOf(key), "error", "입력값이 올바르지 않습니다.")
	}

	content, err := a.cs.GetAll(rctx)
	if err != nil {
		return a.contentUnavailable(c, key, err)
	}

	e := sections.NewListEditor(list, content, a.cs)
	_, err = e.SaveRow(rctx, row)
	return a.sectionSaved(c, key, err)
}

func deleteRow[T sections.Row[T]](a *App, c echo.Context, list sections.ListSection[T], id int64) error {
	rctx := c.Request().Context()
	key := list.Key().String()

	content, err := a.cs.GetAll(rctx)
	if err != nil {
		return a.contentUnavailable(c, key, err)
	}

	e := sections.NewListEditor(list, content, a.cs)
	return a.sectionSaved(c, key, e.DeleteRow(rctx, id))
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range blankLines.Split(strings.TrimSpace(text), -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
