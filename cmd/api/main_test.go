package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/infrastructure/memory"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
	"github.com/bimakw/token-holdings/internal/presentation/handlers"
	"github.com/bimakw/token-holdings/internal/testutil"
)

func setupRouterTest(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	store := memory.NewStore()
	store.PutTokens(testutil.CreateTestToken())
	store.AddSnapshots(testutil.CreateTestSnapshot())

	logger := zap.NewNop()
	m := metrics.NewListingMetrics(prometheus.NewRegistry())

	holdingsService := services.NewHoldingsService(store, store, store, cfg.Pagination, m, logger)
	tokenService := services.NewTokenService(store, cfg.Pagination, m, logger)

	return newRouter(cfg, logger,
		handlers.NewHoldingsHandler(holdingsService, cfg.Pagination, logger),
		handlers.NewTokenHandler(tokenService, cfg.Pagination, logger),
		handlers.NewHealthHandler(handlers.Component{Name: "database", Checker: testutil.NewMockHealthChecker(true), Critical: true}),
	)
}

func TestRouter_Routes(t *testing.T) {
	r := setupRouterTest(t)
	alice := testutil.AliceAddress.Hex()

	tests := []struct {
		path   string
		status int
	}{
		{"/live", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/addresses/" + alice + "/tokens", http.StatusOK},
		{"/api/v1/addresses/" + alice + "/tokens?page_size=x", http.StatusBadRequest},
		{"/api/v1/addresses/" + alice + "/holdings", http.StatusOK},
		{"/api/v1/tokens", http.StatusOK},
		{"/api/v1/tokens/" + testutil.USDTAddress.Hex(), http.StatusOK},
		{"/api/v1/tokens/" + testutil.BobAddress.Hex(), http.StatusNotFound},
		{"/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{config.LogConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn", Format: "console"}, zapcore.WarnLevel},
		{config.LogConfig{Level: "bogus", Format: "json"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		logger := setupLogger(tt.cfg)
		if !logger.Core().Enabled(tt.level) {
			t.Errorf("%+v: expected level %s enabled", tt.cfg, tt.level)
		}
		if tt.level > zapcore.DebugLevel && logger.Core().Enabled(tt.level-1) {
			t.Errorf("%+v: expected level %s disabled", tt.cfg, tt.level-1)
		}
	}
}
