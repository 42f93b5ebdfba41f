package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobportal/config"
	"jobportal/internal/access"
	"jobportal/internal/api/middleware"
	"jobportal/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *app.Application {
	cfg := &config.Config{}
	cfg.Server = config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	return &app.Application{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Tokens:  access.NewTokenManager("test-secret", time.Hour, time.Now),
		Limiter: middleware.NewMemoryLimiter(time.Now),
		Metrics: middleware.NewMetrics(),
	}
}

func TestServerMiddlewareChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(newTestApp())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(newTestApp())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
