// Package main is the entry point for the Expense Tracker API server.
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

	"github.com/manjeet0505/Expense/config"
	"github.com/manjeet0505/Expense/internal/infra/db"
	"github.com/manjeet0505/Expense/internal/infra/dependency"
	"github.com/manjeet0505/Expense/internal/integration/cache"
	"github.com/manjeet0505/Expense/internal/integration/email"
	"github.com/manjeet0505/Expense/internal/integration/messaging"
)

const (
	tokenPurgeInterval       = time.Hour
	rateLimiterCleanupPeriod = 5 * time.Minute
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	status, err := db.RunMigrations(cfg.Database.URL)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed", "from", status.From, "to", status.To)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	ext := dependency.Externals{Database: database}

	// Redis is optional: without it stats are computed on every request and
	// login attempts are counted per instance.
	if cfg.Redis.URL != "" {
		redisClient, err := db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, stats cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			ext.StatsCache = cache.NewStatsCache(redisClient, cfg.Stats.CacheTTL)
			ext.AttemptCounter = cache.NewAttemptCounter(redisClient)
		}
	}

	if cfg.AMQP.URL != "" {
		amqpClient, err := messaging.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			slog.Warn("AMQP unavailable, transaction events disabled", "error", err)
		} else {
			defer amqpClient.Close()
			ext.Publisher = amqpClient
		}
	}

	if cfg.Email.ResendAPIKey != "" {
		resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if cfg.Email.ResendBaseURL != "" {
			if err := resendClient.SetBaseURL(cfg.Email.ResendBaseURL); err != nil {
				slog.Error("Invalid email configuration", "error", err)
				os.Exit(1)
			}
		}
		ext.EmailSender = resendClient
	}

	injector, err := dependency.NewInjector(cfg, ext)
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Email.WorkerEnabled {
		go injector.EmailWorker.Start(ctx)
	}
	go injector.LoginRateLimiter.RunCleanup(ctx, rateLimiterCleanupPeriod)
	go purgeExpiredTokens(ctx, injector)

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited properly")
}

func purgeExpiredTokens(ctx context.Context, injector *dependency.Injector) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := injector.TokenStore.PurgeExpired(ctx, time.Now().UTC())
			if err != nil {
				slog.Warn("Failed to purge expired tokens", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Purged expired tokens", "count", n)
			}
		}
	}
}
