// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// MonthlyStatsReader provides the statistics budgets are tracked against.
type MonthlyStatsReader interface {
	Execute(ctx context.Context, input stats.GetMonthlyStatsInput) (*stats.GetMonthlyStatsOutput, error)
}

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  valueobject.Month // Optional, defaults to the current month
}

// BudgetStatus pairs a stored budget with its consumption for the month.
type BudgetStatus struct {
	Budget  *entity.Budget
	Tracker valueobject.BudgetTracker
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Month    valueobject.Month
	Budgets  []BudgetStatus
	Budgeted int
	Alerts   int
	Over     int
}

// ListBudgetsUseCase lists the budgets of a month with their trackers.
type ListBudgetsUseCase struct {
	budgetRepo  adapter.BudgetRepository
	statsReader MonthlyStatsReader
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository, statsReader MonthlyStatsReader) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:  budgetRepo,
		statsReader: statsReader,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	month := input.Month
	if month.IsZero() {
		month = valueobject.MonthOf(time.Now().UTC())
	}

	budgets, err := uc.budgetRepo.FindByUser(ctx, input.UserID, adapter.BudgetFilter{Month: &month})
	if err != nil {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeStatsSourceUnavailable,
			domainerror.ErrStatsSourceUnavailable.Error(),
			fmt.Errorf("failed to list budgets: %w", err),
		)
	}

	output := &ListBudgetsOutput{
		Month:   month,
		Budgets: make([]BudgetStatus, 0, len(budgets)),
	}
	if len(budgets) == 0 {
		return output, nil
	}

	monthly, err := uc.statsReader.Execute(ctx, stats.GetMonthlyStatsInput{
		UserID:        input.UserID,
		ReferenceDate: month.Start(),
	})
	if err != nil {
		return nil, err
	}

	for _, b := range budgets {
		tracker, ok := monthly.Stats.TrackerFor(b.Category.String())
		if !ok {
			// The budget was written after the stats were cached.
			tracker = stats.TrackBudget(b.Category, b.Amount, monthly.Stats.SpentIn(b.Category.String()))
		}
		output.Budgets = append(output.Budgets, BudgetStatus{Budget: b, Tracker: tracker})
		output.Budgeted++
		if tracker.Alert {
			output.Alerts++
		}
		if tracker.OverBudget {
			output.Over++
		}
	}

	return output, nil
}
