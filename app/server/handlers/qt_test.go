package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTMissingDayIsNull(t *testing.T) {
	v := newEnv(t)

	rec := v.do(http.MethodGet, "/api/qt?date=2026-1-4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestQTSaveAndOverwrite(t *testing.T) {
	v := newEnv(t)

	first := `{"checkedItems":{"bible":true,"prayer":false,"gratitude":false},"prayerTime":"30분","bibleText":"시편 23편","gratitudeTexts":["","",""]}`
	rec := v.do(http.MethodPost, "/api/qt", `{"date_key":"2026-1-4","data":`+first+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.JSONEq(t, first, v.do(http.MethodGet, "/api/qt?date=2026-1-4", "").Body.String())

	second := `{"checkedItems":{"bible":true,"prayer":true,"gratitude":true},"prayerTime":"1시간","bibleText":"","gratitudeTexts":["a","b","c"]}`
	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/qt", `{"date_key":"2026-1-4","data":`+second+`}`).Code)
	assert.JSONEq(t, second, v.do(http.MethodGet, "/api/qt?date=2026-1-4", "").Body.String())

	// other days are untouched
	assert.Equal(t, "null", v.do(http.MethodGet, "/api/qt?date=2026-1-5", "").Body.String())
}

func TestQTValidation(t *testing.T) {
	v := newEnv(t)

	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodGet, "/api/qt", "").Code)
	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodGet, "/api/qt?date=yesterday", "").Code)
	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodPost, "/api/qt", `{"data":{}}`).Code)
	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodPost, "/api/qt", `{"date_key":"2026-1-4"}`).Code)
	assert.Equal(t, http.StatusBadRequest, v.do(http.MethodPost, "/api/qt", `{"date_key":"2026-1-4","data":null}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, v.do(http.MethodDelete, "/api/qt", "").Code)
}
