// Package alert turns transaction events into budget alert emails.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/dashboard"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// DefaultDedupTTL keeps an alert key long enough to outlive its month.
const DefaultDedupTTL = 45 * 24 * time.Hour

// MonthlyStatsReader provides the trackers alerts are derived from.
type MonthlyStatsReader interface {
	Execute(ctx context.Context, input stats.GetMonthlyStatsInput) (*stats.GetMonthlyStatsOutput, error)
}

// ProcessTransactionEventOutput reports what happened to one event.
type ProcessTransactionEventOutput struct {
	Level  adapter.BudgetAlertLevel // Empty when no alert applies
	Queued bool
}

// ProcessTransactionEventUseCase queues at most one alert per user, category,
// month and level.
type ProcessTransactionEventUseCase struct {
	statsReader  MonthlyStatsReader
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	dedup        adapter.AlertDeduplicator
	budgetsURL   string
	dedupTTL     time.Duration
}

// NewProcessTransactionEventUseCase creates a new ProcessTransactionEventUseCase instance.
func NewProcessTransactionEventUseCase(
	statsReader MonthlyStatsReader,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	dedup adapter.AlertDeduplicator,
	appBaseURL string,
	dedupTTL time.Duration,
) *ProcessTransactionEventUseCase {
	if dedupTTL <= 0 {
		dedupTTL = DefaultDedupTTL
	}
	return &ProcessTransactionEventUseCase{
		statsReader:  statsReader,
		userRepo:     userRepo,
		emailService: emailService,
		dedup:        dedup,
		budgetsURL:   strings.TrimRight(appBaseURL, "/") + "/budgets",
		dedupTTL:     dedupTTL,
	}
}

// Execute evaluates the budget of the event's category and queues an alert
// when it is in the warning band or exceeded.
func (uc *ProcessTransactionEventUseCase) Execute(ctx context.Context, event adapter.TransactionRecordedEvent) (*ProcessTransactionEventOutput, error) {
	out := &ProcessTransactionEventOutput{}
	if event.Type != entity.TransactionTypeExpense || !event.Category.Budgetable() || event.Month.IsZero() {
		return out, nil
	}

	statsOut, err := uc.statsReader.Execute(ctx, stats.GetMonthlyStatsInput{
		UserID:        event.UserID,
		ReferenceDate: event.Month.Start(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly stats: %w", err)
	}

	tracker, ok := statsOut.Stats.TrackerFor(event.Category.String())
	if !ok {
		return out, nil
	}
	switch {
	case tracker.OverBudget:
		out.Level = adapter.BudgetAlertLevelOver
	case tracker.Alert:
		out.Level = adapter.BudgetAlertLevelWarning
	default:
		return out, nil
	}

	user, err := uc.userRepo.FindByID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			slog.Debug("Skipping budget alert for deleted user", "user_id", event.UserID)
			return out, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.WantsBudgetAlerts() {
		return out, nil
	}

	key := AlertKey(event, out.Level)
	first, err := uc.dedup.MarkSent(ctx, key, uc.dedupTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to deduplicate budget alert: %w", err)
	}
	if !first {
		return out, nil
	}

	err = uc.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
		UserID:      user.ID.String(),
		UserEmail:   user.Email,
		UserName:    user.Name,
		Category:    tracker.Category,
		MonthLabel:  dashboard.MonthLabel(event.Month),
		Level:       out.Level,
		Budgeted:    tracker.Budgeted,
		Spent:       tracker.Spent,
		PercentUsed: tracker.RawPercent,
		BudgetsURL:  uc.budgetsURL,
	})
	if err != nil {
		if forgetErr := uc.dedup.Forget(ctx, key); forgetErr != nil {
			slog.Warn("Failed to release budget alert key", "key", key, "error", forgetErr)
		}
		return nil, fmt.Errorf("failed to queue budget alert: %w", err)
	}

	slog.Info("Budget alert queued",
		"user_id", user.ID,
		"category", tracker.Category,
		"month", event.Month.Key(),
		"level", out.Level,
	)
	out.Queued = true
	return out, nil
}

// AlertKey identifies one alert of a user, category, month and level.
func AlertKey(event adapter.TransactionRecordedEvent, level adapter.BudgetAlertLevel) string {
	return fmt.Sprintf("%s:%s:%s:%s", event.UserID, event.Category, event.Month.Key(), level)
}
