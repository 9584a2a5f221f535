package valueobject

import "github.com/shopspring/decimal"

// Percentage thresholds used by budget trackers.
var (
	AlertThresholdPercent = decimal.NewFromInt(80)
	FullBudgetPercent     = decimal.NewFromInt(100)
)

// BudgetTracker is the consumption state of one budget within its month.
type BudgetTracker struct {
	Category string
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
	// PercentUsed is clamped to [0, 100].
	PercentUsed decimal.Decimal
	// RawPercent is the unclamped spent/budgeted ratio in percent.
	RawPercent decimal.Decimal
	// Alert is set in the warning band: 80 <= RawPercent < 100.
	Alert bool
	// OverBudget is set when RawPercent >= 100. It is never set together with Alert.
	OverBudget bool
}

// Remaining returns how much of the budget is left, never below zero.
func (t BudgetTracker) Remaining() decimal.Decimal {
	r := t.Budgeted.Sub(t.Spent)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// MonthlyStats is the aggregate view of one owner's finances for a month.
type MonthlyStats struct {
	Month          Month
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Savings        decimal.Decimal
	MonthlyAverage decimal.Decimal
	// MonthsAveraged is the number of months with data in the rolling window.
	MonthsAveraged int
	// SpentByCategory holds the reference month's expenses per category.
	SpentByCategory map[string]decimal.Decimal
	BudgetTrackers  []BudgetTracker
}

// TrackerFor returns the tracker for category, if any.
func (s *MonthlyStats) TrackerFor(category string) (BudgetTracker, bool) {
	for _, t := range s.BudgetTrackers {
		if t.Category == category {
			return t, true
		}
	}
	return BudgetTracker{}, false
}

// SpentIn returns the reference month's expenses in category.
func (s *MonthlyStats) SpentIn(category string) decimal.Decimal {
	return s.SpentByCategory[category]
}
