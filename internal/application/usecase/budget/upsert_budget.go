// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// MaxNotesLength is the maximum allowed length for budget notes.
const MaxNotesLength = 200

// UpsertBudgetInput represents the input for setting a budget.
type UpsertBudgetInput struct {
	UserID   uuid.UUID
	Category entity.Category
	Amount   decimal.Decimal
	Month    valueobject.Month // Optional, defaults to the current month
	Notes    string
}

// UpsertBudgetOutput represents the output of setting a budget.
type UpsertBudgetOutput struct {
	Budget  *entity.Budget
	Created bool
}

// UpsertBudgetUseCase creates a budget or replaces the amount of an existing one
// for the same category and month.
type UpsertBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	statsCache adapter.StatsCache
}

// NewUpsertBudgetUseCase creates a new UpsertBudgetUseCase instance.
func NewUpsertBudgetUseCase(budgetRepo adapter.BudgetRepository, statsCache adapter.StatsCache) *UpsertBudgetUseCase {
	return &UpsertBudgetUseCase{
		budgetRepo: budgetRepo,
		statsCache: statsCache,
	}
}

// Execute performs the budget upsert.
func (uc *UpsertBudgetUseCase) Execute(ctx context.Context, input UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	if input.Category == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"category is required",
			domainerror.ErrInvalidBudgetCategory,
		)
	}
	if !input.Category.Budgetable() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetCategory,
			fmt.Sprintf("category %q cannot carry a budget", input.Category),
			domainerror.ErrInvalidBudgetCategory,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	notes := strings.TrimSpace(input.Notes)
	if len(notes) > MaxNotesLength {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrBudgetNotesTooLong,
		)
	}

	month := input.Month
	if month.IsZero() {
		month = valueobject.MonthOf(time.Now().UTC())
	}

	budget := entity.NewBudget(input.UserID, input.Category, input.Amount, month, notes)

	created, err := uc.budgetRepo.Upsert(ctx, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	invalidateStats(ctx, uc.statsCache, input.UserID)

	return &UpsertBudgetOutput{
		Budget:  budget,
		Created: created,
	}, nil
}

func invalidateStats(ctx context.Context, cache adapter.StatsCache, userID uuid.UUID) {
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate stats cache",
			"user_id", userID,
			"error", err,
		)
	}
}
