// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

const (
	// DefaultTrendMonths is the number of months returned when none is requested.
	DefaultTrendMonths = 6
	// MaxTrendMonths is the largest number of months a caller may request.
	MaxTrendMonths = 24
)

// GetTrendsInput represents the input for getting trends.
type GetTrendsInput struct {
	UserID uuid.UUID
	Months int       // Optional, defaults to DefaultTrendMonths
	Now    time.Time // Optional, defaults to the current time
}

// TrendPoint represents a single trend data point.
type TrendPoint struct {
	Month            valueobject.Month
	PeriodLabel      string
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	From   valueobject.Month
	To     valueobject.Month
	Trends []TrendPoint
}

// GetTrendsUseCase handles getting monthly income/expense trends.
type GetTrendsUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(dashboardRepo DashboardRepository) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute retrieves one trend point per month, ending with the current month.
func (uc *GetTrendsUseCase) Execute(
	ctx context.Context,
	input GetTrendsInput,
) (*GetTrendsOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > MaxTrendMonths {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonthsRange,
			fmt.Sprintf("months must be between 1 and %d", MaxTrendMonths),
			domainerror.ErrInvalidMonthsRange,
		)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	series := MonthSeries(valueobject.MonthOf(now), months)
	from, to := series[0], series[len(series)-1]

	totals, err := uc.dashboardRepo.GetMonthlyTotals(ctx, input.UserID, from.Start(), to.End())
	if err != nil {
		return nil, fmt.Errorf("failed to get trends: %w", err)
	}

	byMonth := make(map[valueobject.Month]MonthlyTotals, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t
	}

	// Months without transactions are included with zero values.
	trends := make([]TrendPoint, 0, len(series))
	for _, m := range series {
		point := TrendPoint{
			Month:       m,
			PeriodLabel: MonthLabel(m),
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
			Balance:     decimal.Zero,
		}
		if t, ok := byMonth[m]; ok {
			point.Income = t.Income
			point.Expenses = t.Expenses
			point.Balance = t.Income.Sub(t.Expenses)
			point.TransactionCount = t.TransactionCount
		}
		trends = append(trends, point)
	}

	return &GetTrendsOutput{
		From:   from,
		To:     to,
		Trends: trends,
	}, nil
}
