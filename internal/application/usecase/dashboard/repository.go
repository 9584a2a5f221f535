package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// DashboardRepository runs the grouped queries behind the dashboard. Both
// methods cover transactions dated in [start, end].
type DashboardRepository interface {
	// GetMonthlyTotals omits months without transactions; callers zero-fill.
	GetMonthlyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]MonthlyTotals, error)
	// GetCategoryBreakdown sums expenses only.
	GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]RawCategoryBreakdown, error)
}

type MonthlyTotals struct {
	Month            valueobject.Month
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int
}

// RawCategoryBreakdown is one category row before shares are computed.
type RawCategoryBreakdown struct {
	Category         entity.Category
	Amount           decimal.Decimal
	TransactionCount int
}
