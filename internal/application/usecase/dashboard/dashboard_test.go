package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

type mockDashboardRepository struct {
	mock.Mock
}

func (m *mockDashboardRepository) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]MonthlyTotals, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	totals, _ := args.Get(0).([]MonthlyTotals)
	return totals, args.Error(1)
}

func (m *mockDashboardRepository) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]RawCategoryBreakdown, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	breakdown, _ := args.Get(0).([]RawCategoryBreakdown)
	return breakdown, args.Error(1)
}

func TestMonthSeries(t *testing.T) {
	series := MonthSeries(valueobject.NewMonth(2024, time.February), 4)

	require.Len(t, series, 4)
	assert.Equal(t, "2023-11", series[0].Key())
	assert.Equal(t, "2024-02", series[3].Key())
	assert.Nil(t, MonthSeries(valueobject.NewMonth(2024, time.February), 0))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Mar 2025", MonthLabel(valueobject.NewMonth(2025, time.March)))
}

func TestGetTrends_ZeroFillsMissingMonths(t *testing.T) {
	repo := &mockDashboardRepository{}
	uc := NewGetTrendsUseCase(repo)
	userID := uuid.New()
	now := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)

	repo.On("GetMonthlyTotals", mock.Anything, userID,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	).Return([]MonthlyTotals{
		{
			Month:            valueobject.NewMonth(2024, time.January),
			Income:           decimal.NewFromInt(3000),
			Expenses:         decimal.NewFromInt(1200),
			TransactionCount: 7,
		},
	}, nil)

	out, err := uc.Execute(context.Background(), GetTrendsInput{UserID: userID, Months: 3, Now: now})

	require.NoError(t, err)
	require.Len(t, out.Trends, 3)
	assert.Equal(t, "Jan 2024", out.Trends[0].PeriodLabel)
	assert.Equal(t, "1800", out.Trends[0].Balance.String())
	assert.Equal(t, 7, out.Trends[0].TransactionCount)
	assert.True(t, out.Trends[1].Income.IsZero())
	assert.Equal(t, 0, out.Trends[2].TransactionCount)
	assert.Equal(t, "2024-03", out.To.Key())
	repo.AssertExpectations(t)
}

func TestGetTrends_DefaultMonths(t *testing.T) {
	repo := &mockDashboardRepository{}
	uc := NewGetTrendsUseCase(repo)

	repo.On("GetMonthlyTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]MonthlyTotals{}, nil)

	out, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New()})

	require.NoError(t, err)
	assert.Len(t, out.Trends, DefaultTrendMonths)
}

func TestGetTrends_InvalidMonths(t *testing.T) {
	uc := NewGetTrendsUseCase(&mockDashboardRepository{})

	for _, months := range []int{-1, MaxTrendMonths + 1} {
		_, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New(), Months: months})

		var dashErr *domainerror.DashboardError
		require.ErrorAs(t, err, &dashErr)
		assert.Equal(t, domainerror.ErrCodeInvalidMonthsRange, dashErr.Code)
	}
}

func TestGetTrends_RepositoryError(t *testing.T) {
	repo := &mockDashboardRepository{}
	uc := NewGetTrendsUseCase(repo)
	dbErr := errors.New("db down")

	repo.On("GetMonthlyTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := uc.Execute(context.Background(), GetTrendsInput{UserID: uuid.New()})

	require.ErrorIs(t, err, dbErr)
}

func TestGetCategoryBreakdown_SortedWithShares(t *testing.T) {
	repo := &mockDashboardRepository{}
	uc := NewGetCategoryBreakdownUseCase(repo)
	userID := uuid.New()
	march := valueobject.NewMonth(2024, time.March)

	repo.On("GetCategoryBreakdown", mock.Anything, userID, march.Start(), march.End()).Return([]RawCategoryBreakdown{
		{Category: entity.CategoryShopping, Amount: decimal.NewFromInt(25), TransactionCount: 1},
		{Category: entity.CategoryFood, Amount: decimal.NewFromInt(50), TransactionCount: 4},
		{Category: entity.CategoryBills, Amount: decimal.NewFromInt(25), TransactionCount: 1},
	}, nil)

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{UserID: userID, Month: march})

	require.NoError(t, err)
	assert.Equal(t, "100", out.TotalExpenses.String())
	assert.Equal(t, "Mar 2024", out.PeriodLabel)
	require.Len(t, out.Categories, 3)
	assert.Equal(t, entity.CategoryFood, out.Categories[0].Category)
	assert.Equal(t, "50.00", out.Categories[0].Percentage.StringFixed(2))
	assert.Equal(t, entity.CategoryBills, out.Categories[1].Category)
	assert.Equal(t, entity.CategoryShopping, out.Categories[2].Category)
}

func TestGetCategoryBreakdown_Empty(t *testing.T) {
	repo := &mockDashboardRepository{}
	uc := NewGetCategoryBreakdownUseCase(repo)

	repo.On("GetCategoryBreakdown", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]RawCategoryBreakdown{}, nil)

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{UserID: uuid.New()})

	require.NoError(t, err)
	assert.True(t, out.TotalExpenses.IsZero())
	assert.Empty(t, out.Categories)
}
