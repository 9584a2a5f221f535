// Package main runs the budget alert worker: it consumes transaction events
// and queues an email when a budget reaches its warning band or is exceeded.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/manjeet0505/Expense/config"
	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/alert"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/infra/db"
	"github.com/manjeet0505/Expense/internal/integration/cache"
	"github.com/manjeet0505/Expense/internal/integration/email"
	"github.com/manjeet0505/Expense/internal/integration/messaging"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
)

func main() {
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
	if cfg.AMQP.URL == "" {
		slog.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	var (
		statsCache adapter.StatsCache        = cache.NopStatsCache{}
		dedup      adapter.AlertDeduplicator = cache.NewMemoryDeduplicator()
	)
	if cfg.Redis.URL != "" {
		redisClient, err := db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, alerts deduplicated in memory only", "error", err)
		} else {
			defer redisClient.Close()
			statsCache = cache.NewStatsCache(redisClient, cfg.Stats.CacheTTL)
			dedup = cache.NewAlertDeduplicator(redisClient)
		}
	}

	consumer, err := messaging.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	gormDB := database.DB()
	statsUseCase := stats.NewGetMonthlyStatsUseCase(
		persistence.NewTransactionRepository(gormDB),
		persistence.NewBudgetRepository(gormDB),
		statsCache,
	)
	processor := alert.NewProcessTransactionEventUseCase(
		statsUseCase,
		persistence.NewUserRepository(gormDB),
		email.NewService(persistence.NewEmailQueueRepository(gormDB), cfg.Email.SupportEmail),
		dedup,
		cfg.Email.AppBaseURL,
		cfg.Stats.AlertDedupTTL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Budget alert worker started", "queue", cfg.AMQP.Queue)

	err = consumer.Consume(ctx, func(ctx context.Context, event adapter.TransactionRecordedEvent) error {
		_, err := processor.Execute(ctx, event)
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Alert worker stopped", "error", err)
		os.Exit(1)
	}

	slog.Info("Budget alert worker exited")
}
