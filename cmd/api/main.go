package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/rs/cors"

	"github.com/blogvolt/backend/internal/account"
	"github.com/blogvolt/backend/internal/admin"
	"github.com/blogvolt/backend/internal/auth"
	"github.com/blogvolt/backend/internal/config"
	"github.com/blogvolt/backend/internal/drafting"
	"github.com/blogvolt/backend/internal/generation"
	"github.com/blogvolt/backend/internal/history"
	"github.com/blogvolt/backend/internal/keywords"
	"github.com/blogvolt/backend/internal/ledger"
	"github.com/blogvolt/backend/internal/quota"
	"github.com/blogvolt/backend/internal/research"
	"github.com/blogvolt/backend/internal/router"
	"github.com/blogvolt/backend/internal/validation"
	"github.com/blogvolt/backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		slog.Error("Unable to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("Cannot reach PostgreSQL. Ensure Postgres is running, e.g. make dev-up or docker-compose up -d", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to PostgreSQL database successfully!")

	if err := migrations.Up(ctx, cfg.Database.DSN); err != nil {
		slog.Error("Schema migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Schema migrations applied")

	// River migrations
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		slog.Error("Failed to create River migrator", "error", err)
		os.Exit(1)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		slog.Error("River migrate up failed", "error", err)
		os.Exit(1)
	}
	slog.Info("River migrations applied")

	// Ledger
	ledgerRepo := ledger.NewRepository(pool)
	ledgerSvc := ledger.NewService(ledgerRepo)

	// Auth
	authRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(authRepo, ledgerSvc, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authHandler := auth.NewHandler(authSvc, logger)

	// Request validation
	validator, err := validation.New(cfg.Server.SchemaDir)
	if err != nil {
		slog.Error("Schema validator init failed", "dir", cfg.Server.SchemaDir, "error", err)
		os.Exit(1)
	}

	// Generation pipeline
	researcher := research.NewClient(cfg.Providers.ResearchURL, cfg.Providers.ResearchAPIKey, cfg.Providers.ResearchTimeout)
	drafter := drafting.NewClient(cfg.Providers.AnthropicAPIKey, cfg.Providers.AnthropicModel,
		cfg.Generation.MaxRetries, cfg.Generation.RetryDelay)
	postsRepo := history.NewRepository(pool)
	logsRepo := generation.NewLogRepository(pool)
	genSvc := generation.NewService(ledgerSvc, researcher, drafter, postsRepo, logsRepo, authRepo, cfg.Generation, logger)
	genHandler := generation.NewHandler(genSvc, validator, logger)

	// Keywords
	metricsClient := keywords.NewMetricsClient(cfg.Providers.KeywordMetricsURL,
		cfg.Providers.KeywordAPIKey, cfg.Providers.KeywordSecret, cfg.Providers.KeywordCustomerID,
		cfg.Providers.KeywordMetricsTimeout)
	keywordsHandler := keywords.NewHandler(metricsClient, validator, logger)

	// History, account, admin
	historyHandler := history.NewHandler(postsRepo, logger)
	accountHandler := account.NewHandler(authRepo, ledgerSvc, logger)
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, ledgerSvc, logger)

	// Daily quota reset worker
	workers := river.NewWorkers()
	river.AddWorker(workers, quota.NewResetWorker(quota.NewRepository(pool), logger))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		Workers:      workers,
		PeriodicJobs: []*river.PeriodicJob{quota.PeriodicJob()},
	})
	if err != nil {
		slog.Error("Failed to create River client", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := riverClient.Start(ctx); err != nil && ctx.Err() == nil {
			slog.Error("River client stopped", "error", err)
		}
	}()

	apiRouter := router.New(router.Handlers{
		Auth:       authHandler,
		Generation: genHandler,
		Keywords:   keywordsHandler,
		History:    historyHandler,
		Account:    accountHandler,
		Admin:      adminHandler,
	}, authSvc, authRepo)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
	}).Handler(apiRouter)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}
	if err := riverClient.Stop(shutdownCtx); err != nil {
		slog.Error("River shutdown failed", "error", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
