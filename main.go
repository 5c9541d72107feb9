// Prospera engine: scores a catalog of external business opportunities
// against company profiles using LLM-backed analysis and serves the results
// over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/config"
	"github.com/prospera-ai/prospera-engine/pkg/database"
	"github.com/prospera-ai/prospera-engine/pkg/handlers"
	"github.com/prospera-ai/prospera-engine/pkg/llm"
	"github.com/prospera-ai/prospera-engine/pkg/logging"
	"github.com/prospera-ai/prospera-engine/pkg/middleware"
	"github.com/prospera-ai/prospera-engine/pkg/repositories"
	"github.com/prospera-ai/prospera-engine/pkg/services"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prospera-engine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("config.yaml", Version)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting prospera-engine",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	profileRepo := repositories.NewProfileRepository(db)
	opportunityRepo := repositories.NewOpportunityRepository(db)
	matchRepo := repositories.NewMatchRepository(db)

	if cfg.SeedFile != "" {
		seeder := services.NewCatalogSeeder(opportunityRepo, logger)
		if _, err := seeder.Seed(ctx, cfg.SeedFile); err != nil {
			return fmt.Errorf("failed to seed opportunity catalog: %w", err)
		}
	}

	oracle, err := llm.NewOracleClient(&cfg.Oracle, logger)
	if err != nil {
		return fmt.Errorf("failed to create oracle client: %w", err)
	}

	oracleTimeout := time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second
	analyzer := services.NewProfileAnalyzer(oracle, cfg.Matching, oracleTimeout, logger)
	scorer := services.NewRelevanceScorer(oracle, cfg.Matching, oracleTimeout, logger)
	matcher := services.NewOpportunityMatcher(analyzer, scorer, cfg.Matching, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProfileHandler(profileRepo, logger).RegisterRoutes(mux)
	handlers.NewOpportunityHandler(opportunityRepo, logger).RegisterRoutes(mux)
	handlers.NewMatchHandler(matcher, profileRepo, opportunityRepo, matchRepo, cfg.Matching.MinScore, logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
