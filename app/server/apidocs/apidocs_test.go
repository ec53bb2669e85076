package apidocs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocServer(t *testing.T, opts ...Opts) *echo.Echo {
	t.Helper()

	doc, err := Load(context.Background())
	require.NoError(t, err)

	e := echo.New()
	e.Pre(Doc("/api", doc, opts...))
	e.GET("/api/content", func(c echo.Context) error { return c.String(http.StatusOK, "content") })
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLoadCoversEveryEndpoint(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	for _, p := range []string{"/content", "/admin/session", "/newcomers", "/posts", "/qt", "/chat", "/summary"} {
		assert.NotNil(t, doc.Paths.Find(p), p)
	}
}

func TestDocServesSpecForRequestOrigin(t *testing.T) {
	e := newDocServer(t)

	rec := get(e, "http://church.example/api/apispec.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var served struct {
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &served))
	require.Len(t, served.Servers, 1)
	assert.Equal(t, "http://church.example/api", served.Servers[0].URL)
	assert.Contains(t, served.Paths, "/posts")

	// the loaded document itself is not rewritten
	doc, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api", doc.Servers[0].URL)
}

func TestDocServesPageAndYAML(t *testing.T) {
	e := newDocServer(t)

	rec := get(e, "/api/apidocs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/api/apispec.json"`)
	assert.Contains(t, rec.Body.String(), "<title>Seongnam Shinkwang Church site API</title>")

	rec = get(e, "/api/openapi.yaml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = get(e, "/api")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/apidocs", rec.Header().Get(echo.HeaderLocation))

	// everything else passes through
	rec = get(e, "/api/content")
	assert.Equal(t, "content", rec.Body.String())
}

func TestDocAuthorizer(t *testing.T) {
	e := newDocServer(t, WithAuthorizer(func(*http.Request) bool { return false }))

	for _, target := range []string{"/api", "/api/apidocs", "/api/apispec.json", "/api/openapi.yaml"} {
		assert.Equal(t, http.StatusForbidden, get(e, target).Code, target)
	}
	assert.Equal(t, http.StatusOK, get(e, "/api/content").Code)
}
