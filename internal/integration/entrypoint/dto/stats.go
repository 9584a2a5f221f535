package dto

import (
	"sort"

	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// CategorySpendResponse is the amount spent in one category.
type CategorySpendResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// MonthlyStatsResponse represents the response for GET /stats.
type MonthlyStatsResponse struct {
	Month           string                  `json:"month"`
	TotalIncome     string                  `json:"total_income"`
	TotalExpenses   string                  `json:"total_expenses"`
	Savings         string                  `json:"savings"`
	MonthlyAverage  string                  `json:"monthly_average"`
	MonthsAveraged  int                     `json:"months_averaged"`
	SpentByCategory []CategorySpendResponse `json:"spent_by_category"`
	BudgetTrackers  []BudgetTrackerResponse `json:"budget_trackers"`
}

// ToMonthlyStatsResponse converts MonthlyStats to its DTO.
// Categories are listed by name.
func ToMonthlyStatsResponse(s *valueobject.MonthlyStats) MonthlyStatsResponse {
	spent := make([]CategorySpendResponse, 0, len(s.SpentByCategory))
	for category, amount := range s.SpentByCategory {
		spent = append(spent, CategorySpendResponse{Category: category, Amount: money(amount)})
	}
	sort.Slice(spent, func(i, j int) bool { return spent[i].Category < spent[j].Category })

	trackers := make([]BudgetTrackerResponse, len(s.BudgetTrackers))
	for i, t := range s.BudgetTrackers {
		trackers[i] = ToBudgetTrackerResponse(t)
	}

	return MonthlyStatsResponse{
		Month:           s.Month.Key(),
		TotalIncome:     money(s.TotalIncome),
		TotalExpenses:   money(s.TotalExpenses),
		Savings:         money(s.Savings),
		MonthlyAverage:  money(s.MonthlyAverage),
		MonthsAveraged:  s.MonthsAveraged,
		SpentByCategory: spent,
		BudgetTrackers:  trackers,
	}
}
