package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"shinkwang-site/app/sections"
	"shinkwang-site/app/server/constants"
)

func TestPagesRenderDefaultsForGuests(t *testing.T) {
	v := newEnv(t)

	for path, want := range map[string]string{
		"/":        "성남신광교회에 오신 여러분을 환영합니다.",
		"/worship": "주일오전1부예배",
		"/online":  "농협은행",
		"/pastor":  sections.Pastor.Default().Headline,
	} {
		rec := v.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
		assert.NotContains(t, rec.Body.String(), "ADMINISTRATOR MODE ACTIVE", path)
		assert.NotContains(t, rec.Body.String(), "/admin/sections/", path)
	}
}

func TestCorruptedScheduleFallsBackOnPage(t *testing.T) {
	v := newEnv(t)
	require.NoError(t, v.a.cs.Upsert(t.Context(), "general_worship", "{not json"))

	rec := v.do(http.MethodGet, "/worship", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "주일오전1부예배")
}

func TestAdminSeesEditForms(t *testing.T) {
	v := newEnv(t)

	rec := v.do(http.MethodGet, "/worship", "", withToken(v.adminToken(t)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADMINISTRATOR MODE ACTIVE")
	assert.Contains(t, rec.Body.String(), `action="/admin/sections/general_worship/rows"`)
}

func TestSectionTextSave(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	rec := v.form("/admin/sections/hero_title", url.Values{"value": {"새 제목"}}, withToken(token))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/?notice=")

	assert.Contains(t, v.do(http.MethodGet, "/", "").Body.String(), "새 제목")

	// the admin keeps the edit forms after reloading, by token or by cookie
	for _, opt := range []reqOpt{
		withToken(token),
		withCookie(&http.Cookie{Name: constants.AuthCookieName, Value: token}),
	} {
		body := v.do(http.MethodGet, "/", "", opt).Body.String()
		assert.Contains(t, body, "ADMINISTRATOR MODE ACTIVE")
		assert.Contains(t, body, `action="/admin/sections/hero_title"`)
		assert.Contains(t, body, "<textarea name=\"value\">새 제목</textarea>")
	}

	// guests cannot edit
	rec = v.form("/admin/sections/hero_title", url.Values{"value": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = v.form("/admin/sections/unknown", url.Values{"value": {"x"}}, withToken(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSectionPastorSave(t *testing.T) {
	v := newEnv(t)

	rec := v.form("/admin/sections/pastor_profile", url.Values{
		"name":       {"새 목사"},
		"paragraphs": {"첫 문단\n\n둘째 문단\n\n\n"},
	}, withToken(v.adminToken(t)))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/pastor?notice=")

	all, err := v.a.cs.GetAll(t.Context())
	require.NoError(t, err)
	p := sections.Pastor.From(all)
	assert.Equal(t, "새 목사", p.Name)
	assert.Equal(t, []string{"첫 문단", "둘째 문단"}, p.Paragraphs)
	assert.Equal(t, sections.Pastor.Default().Headline, p.Headline, "fields missing from the form keep their value")
}

func TestSectionRowLifecycle(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	rec := v.form("/admin/sections/school_worship/rows", url.Values{
		"name": {"청년부"}, "time": {"주일 오후 2시"}, "place": {"비전홀"}, "teacher": {"김교사"},
	}, withToken(token))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/worship?notice=")

	all, err := v.a.cs.GetAll(t.Context())
	require.NoError(t, err)
	rows := sections.SchoolWorship.From(all)
	require.Len(t, rows, len(sections.SchoolWorship.Default())+1)
	added := rows[len(rows)-1]
	assert.Equal(t, "청년부", added.Name)
	// the other list is untouched
	assert.NotContains(t, all, "general_worship")

	rec = v.form("/admin/sections/school_worship/rows", url.Values{
		"id": {itoa64(added.ID)}, "name": {"청년부"}, "time": {"주일 오후 3시"}, "place": {"비전홀"},
	}, withToken(token))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	all, _ = v.a.cs.GetAll(t.Context())
	rows = sections.SchoolWorship.From(all)
	assert.Equal(t, "주일 오후 3시", rows[len(rows)-1].Time)

	rec = v.form("/admin/sections/school_worship/rows/"+itoa64(added.ID)+"/delete", url.Values{}, withToken(token))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	all, _ = v.a.cs.GetAll(t.Context())
	assert.Len(t, sections.SchoolWorship.From(all), len(sections.SchoolWorship.Default()))

	rec = v.form("/admin/sections/school_worship/rows/424242/delete", url.Values{}, withToken(token))
	assert.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestSermonRowIsNormalised(t *testing.T) {
	v := newEnv(t)

	rec := v.form("/admin/sections/sermons_list/rows", url.Values{
		"title":      {"새 설교"},
		"youtubeUrl": {"https://youtu.be/dQw4w9WgXcQ"},
		"startTime":  {"1:30"},
		"endTime":    {"31:30"},
	}, withToken(v.adminToken(t)))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/online?notice=")

	all, err := v.a.cs.GetAll(t.Context())
	require.NoError(t, err)
	sermons := sections.Sermons.From(all)
	require.NotEmpty(t, sermons)
	s := sermons[0]
	assert.Equal(t, "새 설교", s.Title, "sermons are prepended")
	assert.Equal(t, 90, s.StartTime)
	assert.Equal(t, 1890, s.EndTime)
	assert.Equal(t, "30:00", s.Duration)
	assert.Equal(t, sections.ThumbnailURL("dQw4w9WgXcQ"), s.Thumbnail)
	assert.Equal(t, sections.SeniorPastor, s.Pastor)

	page := v.do(http.MethodGet, "/online?sermon="+itoa64(s.ID), "").Body.String()
	assert.Contains(t, page, "https://www.youtube.com/embed/dQw4w9WgXcQ?start=90")
}

func TestHealthCheck(t *testing.T) {
	v := newEnv(t)
	assert.Equal(t, http.StatusOK, v.do(http.MethodGet, "/healthz", "").Code)

	v.mr.Close()
	assert.Equal(t, http.StatusServiceUnavailable, v.do(http.MethodGet, "/healthz", "").Code)
}

func TestEditsAbortWhenContentUnreadable(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	stored := []sections.WorshipRow{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, v.a.cs.Upsert(t.Context(), "general_worship", string(raw)))
	require.NoError(t, v.a.cs.Upsert(t.Context(), "pastor_profile", `{"name":"기존 목사"}`))

	var failing atomic.Bool
	require.NoError(t, v.db.Callback().Query().Before("gorm:query").Register("test:fail_reads", func(tx *gorm.DB) {
		if failing.Load() {
			_ = tx.AddError(errors.New("connection reset"))
		}
	}))
	failing.Store(true)

	for target, values := range map[string]url.Values{
		"/admin/sections/general_worship/rows":          {"name": {"NEW"}, "time": {"매일"}, "place": {"본당"}},
		"/admin/sections/general_worship/rows/2/delete": {},
		"/admin/sections/pastor_profile":                {"name": {"새 목사"}},
	} {
		rec := v.form(target, values, withToken(token))
		require.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Location"), "error=", target)
		assert.NotContains(t, rec.Header().Get("Location"), "notice=", target)
	}

	failing.Store(false)
	all, err := v.a.cs.GetAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, stored, sections.GeneralWorship.From(all))
	assert.Equal(t, "기존 목사", sections.Pastor.From(all).Name)
}
