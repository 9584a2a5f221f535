package persistence

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/manjeet0505/Expense/internal/application/usecase/dashboard"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a gorm-backed dashboard repository.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// period selects a user's transactions dated in [from, to].
func (r *dashboardRepository) period(ctx context.Context, userID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to)
}

// GetMonthlyTotals groups by day in SQL and folds days into months here, so
// the query needs no dialect-specific date functions.
func (r *dashboardRepository) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dashboard.MonthlyTotals, error) {
	var days []struct {
		Date  time.Time
		Type  string
		Total decimal.Decimal
		Count int
	}
	err := r.period(ctx, userID, from, to).
		Select("date, type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("date, type").
		Scan(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	index := make(map[valueobject.Month]int)
	var months []dashboard.MonthlyTotals
	for _, d := range days {
		month := valueobject.MonthOf(d.Date.UTC())
		i, ok := index[month]
		if !ok {
			i = len(months)
			index[month] = i
			months = append(months, dashboard.MonthlyTotals{Month: month, Income: decimal.Zero, Expenses: decimal.Zero})
		}

		m := &months[i]
		switch entity.TransactionType(d.Type) {
		case entity.TransactionTypeIncome:
			m.Income = m.Income.Add(d.Total)
		case entity.TransactionTypeExpense:
			m.Expenses = m.Expenses.Add(d.Total)
		}
		m.TransactionCount += d.Count
	}

	slices.SortFunc(months, func(a, b dashboard.MonthlyTotals) int {
		return a.Month.Compare(b.Month)
	})
	return months, nil
}

// GetCategoryBreakdown sums expenses per category, largest first.
func (r *dashboardRepository) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dashboard.RawCategoryBreakdown, error) {
	var rows []struct {
		Category string
		Amount   decimal.Decimal
		Count    int
	}
	err := r.period(ctx, userID, from, to).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Select("category, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Group("category").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	breakdown := make([]dashboard.RawCategoryBreakdown, len(rows))
	for i, row := range rows {
		breakdown[i] = dashboard.RawCategoryBreakdown{
			Category:         entity.Category(row.Category),
			Amount:           row.Amount,
			TransactionCount: row.Count,
		}
	}
	return breakdown, nil
}
