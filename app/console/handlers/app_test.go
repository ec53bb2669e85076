package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shinkwang-site/app/console/client"
	"shinkwang-site/app/console/config"
	"shinkwang-site/app/console/prefs"
)

const (
	testSecret = "0191"
	testToken  = "issued-token"
)

// fakeSite is an in-memory stand-in for the site API.
type fakeSite struct {
	mu sync.Mutex

	content   map[string]string
	posts     []client.Post
	newcomers []client.Newcomer
	qt        map[string]json.RawMessage

	revoked    bool
	failUpsert bool
	failLike   bool
	chatStatus int
	chatText   string
	lastChat   map[string]string

	likeCalls int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		content: map[string]string{},
		qt:      map[string]json.RawMessage{},
	}
}

func (f *fakeSite) isAdmin(r *http.Request) bool {
	return !f.revoked && r.Header.Get("Authorization") == "Bearer "+testToken
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

var okBody = map[string]bool{"success": true}

func (f *fakeSite) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/content", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.content)
	})
	mux.HandleFunc("POST /api/content", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.isAdmin(r) {
			fail(w, http.StatusUnauthorized, "Administrator session required")
			return
		}
		if f.failUpsert {
			fail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		var body struct{ Key, Value string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.content[body.Key] = body.Value
		writeJSON(w, http.StatusOK, okBody)
	})

	mux.HandleFunc("POST /api/admin/session", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Secret string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Secret != testSecret {
			fail(w, http.StatusUnauthorized, "Wrong secret")
			return
		}
		f.mu.Lock()
		f.revoked = false
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": testToken, "expiresAt": time.Now().Add(time.Hour).Unix()})
	})
	mux.HandleFunc("GET /api/admin/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": f.isAdmin(r)})
	})
	mux.HandleFunc("DELETE /api/admin/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.revoked = true
		writeJSON(w, http.StatusOK, okBody)
	})

	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.posts)
	})
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var p client.NewPost
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.AuthorName == "" || p.Content == "" {
			fail(w, http.StatusBadRequest, "Missing Required Fields")
			return
		}
		f.posts = append([]client.Post{{ID: uint(len(f.posts) + 1), Author: p.AuthorName + " " + p.AuthorTitle, Content: p.Content}}, f.posts...)
		writeJSON(w, http.StatusCreated, okBody)
	})
	mux.HandleFunc("PATCH /api/posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.likeCalls++
		if f.failLike {
			fail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		var body struct {
			ID   uint
			Type string
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range f.posts {
			if f.posts[i].ID == body.ID {
				f.posts[i].Likes++
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "likes": f.posts[i].Likes})
				return
			}
		}
		fail(w, http.StatusNotFound, "Post not found")
	})
	mux.HandleFunc("DELETE /api/posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.isAdmin(r) {
			fail(w, http.StatusUnauthorized, "Administrator session required")
			return
		}
		id, _ := strconv.Atoi(r.URL.Query().Get("id"))
		kept := f.posts[:0]
		for _, p := range f.posts {
			if p.ID != uint(id) {
				kept = append(kept, p)
			}
		}
		f.posts = kept
		writeJSON(w, http.StatusOK, okBody)
	})

	mux.HandleFunc("GET /api/newcomers", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.isAdmin(r) {
			fail(w, http.StatusUnauthorized, "Administrator session required")
			return
		}
		writeJSON(w, http.StatusOK, f.newcomers)
	})
	mux.HandleFunc("POST /api/newcomers", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var n client.Newcomer
		_ = json.NewDecoder(r.Body).Decode(&n)
		n.ID = uint(len(f.newcomers) + 1)
		n.RegistrationDate = time.Now()
		f.newcomers = append(f.newcomers, n)
		writeJSON(w, http.StatusOK, okBody)
	})
	mux.HandleFunc("PUT /api/newcomers", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var n client.Newcomer
		_ = json.NewDecoder(r.Body).Decode(&n)
		for i := range f.newcomers {
			if f.newcomers[i].ID == n.ID {
				n.RegistrationDate = f.newcomers[i].RegistrationDate
				f.newcomers[i] = n
				writeJSON(w, http.StatusOK, okBody)
				return
			}
		}
		fail(w, http.StatusNotFound, "Newcomer not found")
	})

	mux.HandleFunc("GET /api/qt", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		raw, ok := f.qt[r.URL.Query().Get("date")]
		if !ok {
			raw = json.RawMessage("null")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	})
	mux.HandleFunc("POST /api/qt", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var body struct {
			DateKey string          `json:"date_key"`
			Data    json.RawMessage `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.qt[body.DateKey] = body.Data
		writeJSON(w, http.StatusOK, okBody)
	})

	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&f.lastChat)
		if f.chatStatus != 0 {
			fail(w, f.chatStatus, "Failed to generate response")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": f.chatText})
	})
	mux.HandleFunc("POST /api/summary", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]string{"summary": "요약: " + body["title"]})
	})

	return mux
}

type testApp struct {
	*App
	site *fakeSite
	out  *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	site := newFakeSite()
	srv := httptest.NewServer(site.handler())
	t.Cleanup(srv.Close)

	p, err := prefs.Load(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, err)

	cfg := &config.Config{
		ServerEndpoint: srv.URL,
		RequestTimeout: 5 * time.Second,
		WatchInterval:  10 * time.Millisecond,
		PrefsFile:      p.Path(),
	}
	out := &bytes.Buffer{}
	a := NewApp(cfg, zap.NewNop(), client.New(srv.URL, cfg.RequestTimeout), p, strings.NewReader(input), out)
	return &testApp{App: a, site: site, out: out}
}

func (v *testApp) enterAdmin(t *testing.T) {
	t.Helper()
	require.NoError(t, v.AdminEnter(t.Context(), testSecret))
	v.out.Reset()
}
