package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "4")
	cfg, err := config.LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	deps, err := BuildDependencies(ctx, cfg, mock, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)
	return router, mock
}

func serve(router *gin.Engine, method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:40000"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_Liveness(t *testing.T) {
	router, mock := newTestRouter(t, testConfig(t))

	w := serve(router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	mock.ExpectPing()
	w = serve(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = serve(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(t))

	w := serve(router, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page Not Found")
}

func TestSetupRouter_Metrics(t *testing.T) {
	cfg := testConfig(t)
	router, _ := newTestRouter(t, cfg)
	w := serve(router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "teacherauth_throttle_rejections_total")

	cfg.Metrics.Enabled = false
	router, _ = newTestRouter(t, cfg)
	w = serve(router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouter_CORSAllowsSPAOrigin(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(t))

	w := serve(router, http.MethodOptions, "/api/login", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(router, http.MethodOptions, "/api/login", "", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_LoginIsThrottled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Throttle.MaxAttempts = 2
	router, _ := newTestRouter(t, cfg)

	// malformed bodies fail with 400 and count against the limit
	for i := 0; i < 2; i++ {
		w := serve(router, http.MethodPost, "/api/login", `{`, map[string]string{"Content-Type": "application/json"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := serve(router, http.MethodPost, "/api/login", `{`, map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// spoofed forwarding headers are ignored without trusted proxies
	w = serve(router, http.MethodPost, "/api/login", `{`, map[string]string{
		"Content-Type":    "application/json",
		"X-Forwarded-For": "198.51.100.1",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSetupRouter_GuardedRoutes(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(t))

	for _, path := range []string{"/api/me", "/profile", "/profiles"} {
		w := serve(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := serve(router, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupThrottleStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Throttle.Backend = config.ThrottleBackendRedis
	cfg.Redis.Addr = mr.Addr()

	store, closeStore, err := SetupThrottleStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	r, err := store.Reserve(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
	assert.Equal(t, cfg.Throttle.MaxAttempts-1, r.Remaining)
}

func TestSetupThrottleStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Throttle.Backend = config.ThrottleBackendRedis
	cfg.Redis.Addr = addr

	_, _, err := SetupThrottleStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
