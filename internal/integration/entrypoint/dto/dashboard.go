package dto

import (
	"github.com/manjeet0505/Expense/internal/application/usecase/dashboard"
)

// TrendPointResponse represents one month of the trends series.
type TrendPointResponse struct {
	Month            string `json:"month"`
	PeriodLabel      string `json:"period_label"`
	Income           string `json:"income"`
	Expenses         string `json:"expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// TrendsResponse represents the response for GET /dashboard/trends.
type TrendsResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Trends []TrendPointResponse `json:"trends"`
}

// CategoryBreakdownItemResponse represents one category of the breakdown.
type CategoryBreakdownItemResponse struct {
	Category         string `json:"category"`
	Amount           string `json:"amount"`
	Percentage       string `json:"percentage"`
	TransactionCount int    `json:"transaction_count"`
}

// CategoryBreakdownResponse represents the response for GET /dashboard/category-breakdown.
type CategoryBreakdownResponse struct {
	Month         string                          `json:"month"`
	PeriodLabel   string                          `json:"period_label"`
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// ToTrendsResponse converts a GetTrendsOutput to TrendsResponse.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, p := range output.Trends {
		trends[i] = TrendPointResponse{
			Month:            p.Month.Key(),
			PeriodLabel:      p.PeriodLabel,
			Income:           money(p.Income),
			Expenses:         money(p.Expenses),
			Balance:          money(p.Balance),
			TransactionCount: p.TransactionCount,
		}
	}
	return TrendsResponse{
		From:   output.From.Key(),
		To:     output.To.Key(),
		Trends: trends,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to CategoryBreakdownResponse.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			Category:         c.Category.String(),
			Amount:           money(c.Amount),
			Percentage:       money(c.Percentage),
			TransactionCount: c.TransactionCount,
		}
	}
	return CategoryBreakdownResponse{
		Month:         output.Month.Key(),
		PeriodLabel:   output.PeriodLabel,
		TotalExpenses: money(output.TotalExpenses),
		Categories:    categories,
	}
}
