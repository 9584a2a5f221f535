package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Month  valueobject.Month // Optional, defaults to the current month
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	Category         entity.Category
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Month         valueobject.Month
	PeriodLabel   string
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(dashboardRepo DashboardRepository) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute returns the month's expenses per category, largest amount first
// with ties broken by name. Percentages are of the month's total expenses.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	month := input.Month
	if month.IsZero() {
		month = valueobject.MonthOf(time.Now().UTC())
	}

	rows, err := uc.dashboardRepo.GetCategoryBreakdown(ctx, input.UserID, month.Start(), month.End())
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	items := make([]CategoryBreakdownItem, len(rows))
	for i, row := range rows {
		items[i] = CategoryBreakdownItem{
			Category:         row.Category,
			Amount:           row.Amount,
			Percentage:       shareOf(row.Amount, total),
			TransactionCount: row.TransactionCount,
		}
	}
	slices.SortStableFunc(items, func(a, b CategoryBreakdownItem) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})

	return &GetCategoryBreakdownOutput{
		Month:         month,
		PeriodLabel:   MonthLabel(month),
		TotalExpenses: total,
		Categories:    items,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// shareOf returns part as a percentage of total with two decimals, or zero
// when total is not positive.
func shareOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(2)
}
