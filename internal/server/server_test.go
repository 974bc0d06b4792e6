package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		HTTP: config.HTTPConfig{
			Port:            8080,
			ShutdownTimeout: time.Second,
		},
		Storage:       config.StorageConfig{Driver: config.DriverMemory},
		Session:       config.SessionConfig{Secret: config.DevSecret, TTL: time.Hour},
		AdminEmail:    "admin@skillsync.com",
		MaxPhotoBytes: 1 << 20,
		CORSOrigins:   []string{"http://localhost:8080"},
		RateLimit:     config.RateLimitConfig{RPS: 100, Burst: 100},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// browser replays the session cookie the server issued, like a real one.
type browser struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (b *browser) do(method, target, body string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "198.51.100.7:4000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rr := httptest.NewRecorder()
	b.h.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			b.cookie = c
		}
	}
	return rr
}

func TestServer_IssuesSessionCookie(t *testing.T) {
	s := newTestServer(t, testConfig())
	b := &browser{t: t, h: s.Handler()}

	rr := b.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
	first := b.cookie.Value

	rr = b.do(http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies(), "a valid cookie is not reissued")
	assert.Equal(t, first, b.cookie.Value)

	var view struct {
		LoggedIn bool `json:"loggedIn"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.False(t, view.LoggedIn)
}

func TestServer_LoginPersistsAcrossRequests(t *testing.T) {
	s := newTestServer(t, testConfig())
	b := &browser{t: t, h: s.Handler()}

	rr := b.do(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodGet, "/api/requests", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodGet, "/api/requests", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServer_AdminAccess(t *testing.T) {
	s := newTestServer(t, testConfig())

	visitor := &browser{t: t, h: s.Handler()}
	rr := visitor.do(http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Access Denied")
	assert.Empty(t, rr.Header().Get("Location"))

	rr = visitor.do(http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	member := &browser{t: t, h: s.Handler()}
	member.do(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com","password":"pw"}`)
	rr = member.do(http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	admin := &browser{t: t, h: s.Handler()}
	rr = admin.do(http.MethodPost, "/api/auth/admin/login", `{"email":"admin@skillsync.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = admin.do(http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = admin.do(http.MethodGet, "/api/admin/export/users", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestServer_NotFoundAndHealth(t *testing.T) {
	s := newTestServer(t, testConfig())
	b := &browser{t: t, h: s.Handler()}

	rr := b.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Oops! Page not found")

	rr = b.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
}

func TestServer_SQLiteBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Storage = config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}
	s := newTestServer(t, cfg)
	b := &browser{t: t, h: s.Handler()}

	rr := b.do(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = b.do(http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_RateLimitsAuth(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 2}
	s := newTestServer(t, cfg)
	b := &browser{t: t, h: s.Handler()}

	for i := 0; i < 2; i++ {
		rr := b.do(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com","password":"pw"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := b.do(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// Reading pages is not limited.
	rr = b.do(http.MethodGet, "/api/members", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_StartStops(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Port = 0
	s := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "mongo"
	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unknown storage driver")
}
