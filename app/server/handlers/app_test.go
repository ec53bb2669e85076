package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"shinkwang-site/app/server/config"
	"shinkwang-site/app/server/internal/testenv"
	"shinkwang-site/app/server/jwt"
	"shinkwang-site/app/server/pages"
)

const testSecret = "0191"

type fakeAssistant struct {
	text   string
	err    error
	prompt string
	system string
}

func (f *fakeAssistant) Generate(_ context.Context, prompt, systemInstruction string) (string, error) {
	f.prompt, f.system = prompt, systemInstruction
	return f.text, f.err
}

type env struct {
	e   *echo.Echo
	a   *App
	db  *gorm.DB
	mr  *miniredis.Miniredis
	jwt *jwt.JWT
	ai  *fakeAssistant
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, testenv.DB(t))
}

func newEnvWith(t *testing.T, db *gorm.DB) *env {
	t.Helper()

	mr, rdb := testenv.Redis(t)
	j, err := jwt.New("test-signing-key")
	require.NoError(t, err)

	var cfg config.Config
	cfg.Security.AdminSecret = testSecret
	cfg.Security.SessionTTL = time.Hour
	cfg.System.CORSOrigin = "*"

	ai := &fakeAssistant{text: "평안하세요"}
	a, err := NewApp(zap.NewNop(), db, rdb, j, &cfg, ai)
	require.NoError(t, err)

	renderer, err := pages.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = a.HTTPErrorHandler
	a.Register(e)

	return &env{e: e, a: a, db: db, mr: mr, jwt: j, ai: ai}
}

// adminToken signs a session the way a successful unlock would.
func (v *env) adminToken(t *testing.T) string {
	t.Helper()
	token, err := v.jwt.SignToken(jwt.NewSession(time.Hour))
	require.NoError(t, err)
	return token
}

type reqOpt func(*http.Request)

func withToken(token string) reqOpt {
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
}

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (v *env) do(method, target, body string, opts ...reqOpt) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func (v *env) form(target string, values url.Values, opts ...reqOpt) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
