package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/fides/internal/api"
	"github.com/saturnino-fabrica-de-software/fides/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/config"
	"github.com/saturnino-fabrica-de-software/fides/internal/database"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
	"github.com/saturnino-fabrica-de-software/fides/internal/scoring"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Fides API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPgxPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Text extractor for document scoring
	auditLogger := audit.NewSlogLogger(logger)
	textExtractor, err := scoring.NewExtractor(ctx, cfg, auditLogger)
	if err != nil {
		return fmt.Errorf("failed to create text extractor: %w", err)
	}

	// Repositories
	apiKeyRepo := repository.NewAPIKeyRepository(pool)

	// Async last_used_at updater for API keys
	lastUsedWorker := middleware.NewLastUsedWorker(apiKeyRepo, logger, middleware.DefaultLastUsedWorkerConfig())
	lastUsedWorker.Start()
	defer lastUsedWorker.Stop()

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		RequestRepo:    repository.NewRequestRepository(pool),
		TrustRepo:      repository.NewTrustRepository(pool),
		APIKeyRepo:     apiKeyRepo,
		Extractor:      textExtractor,
		LastUsedWorker: lastUsedWorker,
		DB:             pool,
		JWTSecret:      cfg.AdminJWTSecret,
		JWTIssuer:      cfg.AdminJWTIssuer,
		Version:        version,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
