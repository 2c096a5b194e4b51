package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/config"
	"github.com/bimakw/token-holdings/internal/infrastructure/database"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
	"github.com/bimakw/token-holdings/internal/presentation/handlers"
	"github.com/bimakw/token-holdings/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting token-holdings API",
		zap.Int("port", cfg.API.Port),
		zap.Int("default_page_size", cfg.Pagination.DefaultPageSize),
		zap.Int("max_page_size", cfg.Pagination.MaxPageSize),
	)

	// Connect to database
	db, err := database.NewPostgresDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Create repositories
	holdingRepo := database.NewHoldingRepo(db.DB())
	snapshotRepo := database.NewSnapshotRepo(db.DB())
	tokenRepo := database.NewTokenRepo(db.DB())

	listingMetrics := metrics.NewListingMetrics(prometheus.DefaultRegisterer)

	// Create services
	holdingsService := services.NewHoldingsService(holdingRepo, snapshotRepo, tokenRepo, cfg.Pagination, listingMetrics, logger)
	tokenService := services.NewTokenService(tokenRepo, cfg.Pagination, listingMetrics, logger)

	r := newRouter(cfg, logger,
		handlers.NewHoldingsHandler(holdingsService, cfg.Pagination, logger),
		handlers.NewTokenHandler(tokenService, cfg.Pagination, logger),
		handlers.NewHealthHandler(handlers.Component{Name: "database", Checker: db, Critical: true}),
	)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newRouter(
	cfg *config.Config,
	logger *zap.Logger,
	holdingsHandler *handlers.HoldingsHandler,
	tokenHandler *handlers.TokenHandler,
	healthHandler *handlers.HealthHandler,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))
		holdingsHandler.RegisterRoutes(r)
		tokenHandler.RegisterRoutes(r)
	})

	return r
}

func setupLogger(cfg config.LogConfig) *zap.Logger {
	var zapLevel zapcore.Level
	switch cfg.Level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
