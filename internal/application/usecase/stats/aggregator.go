// Package stats contains the monthly statistics use cases and the aggregator
// every statistics surface is built on.
package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// AverageWindowMonths is the length of the rolling window used for MonthlyAverage,
// reference month included.
const AverageWindowMonths = 3

var hundred = decimal.NewFromInt(100)

// ComputeMonthlyStats aggregates the owner's transactions and budgets for the
// calendar month containing referenceDate.
//
// Transactions may span any range; only those in the reference month feed the
// totals and trackers, and only those in the trailing AverageWindowMonths feed
// the average. Budgets are matched to the reference month exactly. Records of
// other owners are ignored.
func ComputeMonthlyStats(
	owner uuid.UUID,
	referenceDate time.Time,
	transactions []*entity.Transaction,
	budgets []*entity.Budget,
) (*valueobject.MonthlyStats, error) {
	if referenceDate.IsZero() {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidReferenceDate,
			"reference date is required",
			domainerror.ErrUnnormalizableDate,
		)
	}

	month := valueobject.MonthOf(referenceDate)
	windowStart := month.AddMonths(-(AverageWindowMonths - 1))

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	spentByCategory := make(map[entity.Category]decimal.Decimal)
	netByMonth := make(map[valueobject.Month]decimal.Decimal)

	for _, txn := range transactions {
		if txn == nil || txn.UserID != owner {
			continue
		}
		if err := validateTransaction(txn); err != nil {
			return nil, err
		}

		txnMonth := valueobject.MonthOf(txn.Date)
		if txnMonth.Before(windowStart) || month.Before(txnMonth) {
			continue
		}

		signed := txn.Amount
		if txn.IsExpense() {
			signed = signed.Neg()
		}
		netByMonth[txnMonth] = netByMonth[txnMonth].Add(signed)

		if txnMonth != month {
			continue
		}
		if txn.IsIncome() {
			totalIncome = totalIncome.Add(txn.Amount)
			continue
		}
		totalExpenses = totalExpenses.Add(txn.Amount)
		spentByCategory[txn.Category] = spentByCategory[txn.Category].Add(txn.Amount)
	}

	average := decimal.Zero
	if len(netByMonth) > 0 {
		sum := decimal.Zero
		for _, net := range netByMonth {
			sum = sum.Add(net)
		}
		average = sum.Div(decimal.NewFromInt(int64(len(netByMonth))))
	}

	trackers := make([]valueobject.BudgetTracker, 0, len(budgets))
	for _, budget := range budgets {
		if budget == nil || budget.UserID != owner {
			continue
		}
		if err := validateBudget(budget); err != nil {
			return nil, err
		}
		if budget.Month != month {
			continue
		}
		trackers = append(trackers, TrackBudget(budget.Category, budget.Amount, spentByCategory[budget.Category]))
	}
	sort.SliceStable(trackers, func(i, j int) bool {
		return trackers[i].Category < trackers[j].Category
	})

	spent := make(map[string]decimal.Decimal, len(spentByCategory))
	for category, amount := range spentByCategory {
		spent[category.String()] = amount
	}

	return &valueobject.MonthlyStats{
		Month:           month,
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		Savings:         totalIncome.Sub(totalExpenses),
		MonthlyAverage:  average,
		MonthsAveraged:  len(netByMonth),
		SpentByCategory: spent,
		BudgetTrackers:  trackers,
	}, nil
}

// TrackBudget derives the consumption state of a single budget.
// A zero budget reports 0% used and raises no flag.
func TrackBudget(category entity.Category, budgeted, spent decimal.Decimal) valueobject.BudgetTracker {
	tracker := valueobject.BudgetTracker{
		Category:    category.String(),
		Budgeted:    budgeted,
		Spent:       spent,
		PercentUsed: decimal.Zero,
		RawPercent:  decimal.Zero,
	}
	if !budgeted.IsPositive() {
		return tracker
	}

	raw := spent.Mul(hundred).Div(budgeted)
	tracker.RawPercent = raw
	tracker.PercentUsed = decimal.Min(decimal.Max(raw, decimal.Zero), valueobject.FullBudgetPercent)
	tracker.Alert = raw.GreaterThanOrEqual(valueobject.AlertThresholdPercent) && raw.LessThan(valueobject.FullBudgetPercent)
	tracker.OverBudget = raw.GreaterThanOrEqual(valueobject.FullBudgetPercent)
	return tracker
}

func validateTransaction(txn *entity.Transaction) error {
	if txn.Date.IsZero() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeUnnormalizableDate,
			"transaction "+txn.ID.String()+" has no date",
			domainerror.ErrUnnormalizableDate,
		)
	}
	if txn.Amount.IsNegative() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeNegativeTransactionAmount,
			"transaction "+txn.ID.String()+" has a negative amount",
			domainerror.ErrNegativeTransactionAmount,
		)
	}
	if !txn.Type.IsValid() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeUnknownTransactionType,
			"transaction "+txn.ID.String()+" has unknown type "+string(txn.Type),
			domainerror.ErrInvalidStatsInput,
		)
	}
	if !txn.Category.IsValid() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeUnknownCategory,
			"transaction "+txn.ID.String()+" has unknown category "+txn.Category.String(),
			domainerror.ErrInvalidStatsInput,
		)
	}
	return nil
}

func validateBudget(budget *entity.Budget) error {
	if budget.Month.IsZero() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeUnnormalizableDate,
			"budget "+budget.ID.String()+" has no month",
			domainerror.ErrUnnormalizableDate,
		)
	}
	if budget.Amount.IsNegative() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeNegativeBudgetAmount,
			"budget "+budget.ID.String()+" has a negative amount",
			domainerror.ErrNegativeBudgetAmount,
		)
	}
	if !budget.Category.IsValid() {
		return domainerror.NewStatsError(
			domainerror.ErrCodeUnknownCategory,
			"budget "+budget.ID.String()+" has unknown category "+budget.Category.String(),
			domainerror.ErrInvalidStatsInput,
		)
	}
	return nil
}
