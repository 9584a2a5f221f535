package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// GetMonthlyStatsInput represents the input for getting monthly statistics.
type GetMonthlyStatsInput struct {
	UserID uuid.UUID
	// ReferenceDate selects the month. Defaults to today.
	ReferenceDate time.Time
}

// GetMonthlyStatsOutput represents the output of getting monthly statistics.
type GetMonthlyStatsOutput struct {
	Stats  *valueobject.MonthlyStats
	Cached bool
}

// GetMonthlyStatsUseCase loads a user's transactions and budgets and aggregates them.
type GetMonthlyStatsUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	cache           adapter.StatsCache
}

// NewGetMonthlyStatsUseCase creates a new GetMonthlyStatsUseCase instance.
func NewGetMonthlyStatsUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	cache adapter.StatsCache,
) *GetMonthlyStatsUseCase {
	return &GetMonthlyStatsUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		cache:           cache,
	}
}

// Execute computes (or reads from cache) the statistics of the reference month.
func (uc *GetMonthlyStatsUseCase) Execute(ctx context.Context, input GetMonthlyStatsInput) (*GetMonthlyStatsOutput, error) {
	referenceDate := input.ReferenceDate
	if referenceDate.IsZero() {
		referenceDate = time.Now().UTC()
	}
	month := valueobject.MonthOf(referenceDate)

	// The version is read before loading so a write landing mid-load retires
	// the entry stored below.
	lookup, cacheErr := uc.cache.Get(ctx, input.UserID, month)
	if cacheErr != nil {
		slog.Debug("Stats cache read failed", "user_id", input.UserID, "month", month.Key(), "error", cacheErr)
	} else if lookup.Hit() {
		return &GetMonthlyStatsOutput{Stats: lookup.Stats, Cached: true}, nil
	}

	windowStart := month.AddMonths(-(AverageWindowMonths - 1)).Start()
	windowEnd := month.End()

	var transactions []*entity.Transaction
	var budgets []*entity.Budget

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = uc.transactionRepo.FindByUserAndDateRange(gctx, input.UserID, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = uc.budgetRepo.FindByUser(gctx, input.UserID, adapter.BudgetFilter{Month: &month})
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeStatsSourceUnavailable,
			domainerror.ErrStatsSourceUnavailable.Error(),
			err,
		)
	}

	stats, err := ComputeMonthlyStats(input.UserID, referenceDate, transactions, budgets)
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := uc.cache.Set(ctx, input.UserID, month, lookup.Version, stats); err != nil {
			slog.Debug("Stats cache write failed", "user_id", input.UserID, "month", month.Key(), "error", err)
		}
	}

	return &GetMonthlyStatsOutput{Stats: stats}, nil
}
