// Package main is the entry point for the recurring transaction scheduler API.
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
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/infra/cache"
	"github.com/finance-tracker/recurring/internal/infra/db"
	"github.com/finance-tracker/recurring/internal/infra/dependency"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
	"github.com/finance-tracker/recurring/internal/integration/push"
	"github.com/finance-tracker/recurring/internal/integration/push/templates"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting recurring scheduler API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Redis backs the reminder ledger; without it reminders are deduplicated in process
	var redisConn *cache.Redis
	if cfg.Redis.Enabled {
		redisConn, err = cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, using in-process reminder ledger", "error", err)
			redisConn = nil
		} else {
			defer func() {
				if err := redisConn.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	sender, err := newPushSender(&cfg.Push)
	if err != nil {
		slog.Error("Failed to initialize push sender", "error", err)
		os.Exit(1)
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisConn, sender)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Start background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	injector.LimiterCleanup.Start(workerCtx)
	if cfg.Scheduler.DueWorkerEnabled {
		injector.DueWorker.Start(workerCtx)
	}
	if cfg.Scheduler.ReminderWorkerEnabled {
		if err := injector.ReminderWorker.Start(workerCtx); err != nil {
			slog.Error("Failed to start reminder worker", "error", err)
			os.Exit(1)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	injector.DueWorker.Stop()
	injector.ReminderWorker.Stop()
	injector.LimiterCleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

// newPushSender returns the Resend sender when an API key is configured and
// a log-only sender otherwise.
func newPushSender(cfg *config.PushConfig) (adapter.PushSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, reminders will only be logged")
		return push.NewLogSender(nil), nil
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder templates: %w", err)
	}
	return push.NewResendSender(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, renderer), nil
}
