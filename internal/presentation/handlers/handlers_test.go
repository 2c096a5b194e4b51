package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
	"github.com/bimakw/token-holdings/internal/testutil"
)

var testPagination = config.PaginationConfig{DefaultPageSize: 2, MaxPageSize: 5}

// setupRouter wires both listing handlers over mock repositories the way
// cmd/api does
func setupRouter() (chi.Router, *testutil.Repositories) {
	repos := testutil.NewRepositories()
	logger := zap.NewNop()
	m := metrics.NewListingMetrics(prometheus.NewRegistry())

	holdingsService := services.NewHoldingsService(repos.Holdings, repos.Snapshots, repos.Tokens, testPagination, m, logger)
	tokenService := services.NewTokenService(repos.Tokens, testPagination, m, logger)

	r := chi.NewRouter()
	NewHoldingsHandler(holdingsService, testPagination, logger).RegisterRoutes(r)
	NewTokenHandler(tokenService, testPagination, logger).RegisterRoutes(r)

	return r, repos
}
