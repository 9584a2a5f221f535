package dto

import (
	"time"

	"github.com/manjeet0505/Expense/internal/application/usecase/budget"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// UpsertBudgetRequest represents the request body for setting a monthly budget.
type UpsertBudgetRequest struct {
	Category string `json:"category" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Month    string `json:"month,omitempty"`
	Notes    string `json:"notes,omitempty" binding:"omitempty,max=200"`
}

// BudgetTrackerResponse is the consumption state of a budget.
type BudgetTrackerResponse struct {
	Category    string `json:"category"`
	Budgeted    string `json:"budgeted"`
	Spent       string `json:"spent"`
	Remaining   string `json:"remaining"`
	PercentUsed string `json:"percent_used"`
	Alert       bool   `json:"alert"`
	OverBudget  bool   `json:"over_budget"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID        string                 `json:"id"`
	Category  string                 `json:"category"`
	Amount    string                 `json:"amount"`
	Month     string                 `json:"month"`
	Notes     string                 `json:"notes"`
	Tracker   *BudgetTrackerResponse `json:"tracker,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// BudgetSummaryResponse counts the budgets of a month by state.
type BudgetSummaryResponse struct {
	Budgeted int `json:"budgeted"`
	Alerts   int `json:"alerts"`
	Over     int `json:"over"`
}

// BudgetListResponse represents the response for listing budgets of a month.
type BudgetListResponse struct {
	Month   string                `json:"month"`
	Budgets []BudgetResponse      `json:"budgets"`
	Summary BudgetSummaryResponse `json:"summary"`
}

// ToBudgetTrackerResponse converts a BudgetTracker to its DTO.
func ToBudgetTrackerResponse(t valueobject.BudgetTracker) BudgetTrackerResponse {
	return BudgetTrackerResponse{
		Category:    t.Category,
		Budgeted:    money(t.Budgeted),
		Spent:       money(t.Spent),
		Remaining:   money(t.Remaining()),
		PercentUsed: money(t.PercentUsed),
		Alert:       t.Alert,
		OverBudget:  t.OverBudget,
	}
}

// ToBudgetResponse converts a Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID.String(),
		Category:  b.Category.String(),
		Amount:    money(b.Amount),
		Month:     b.Month.Key(),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBudgetListResponse converts a ListBudgetsOutput to BudgetListResponse.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, status := range output.Budgets {
		tracker := ToBudgetTrackerResponse(status.Tracker)
		budgets[i] = ToBudgetResponse(status.Budget)
		budgets[i].Tracker = &tracker
	}
	return BudgetListResponse{
		Month:   output.Month.Key(),
		Budgets: budgets,
		Summary: BudgetSummaryResponse{
			Budgeted: output.Budgeted,
			Alerts:   output.Alerts,
			Over:     output.Over,
		},
	}
}
