// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/manjeet0505/Expense/internal/application/usecase/transaction"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount is a decimal string so no precision is lost in transit.
type CreateTransactionRequest struct {
	Date          string   `json:"date,omitempty"`
	Description   string   `json:"description" binding:"required,min=1,max=255"`
	Amount        string   `json:"amount" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=expense income"`
	Category      string   `json:"category" binding:"required"`
	PaymentMethod string   `json:"payment_method,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Notes         string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string   `json:"date,omitempty"`
	Description   *string   `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *string   `json:"amount,omitempty"`
	Type          *string   `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Category      *string   `json:"category,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Notes         *string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	Tags          []string  `json:"tags"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// RecentTransactionsResponse represents the response for the recent transactions listing.
type RecentTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	tags := txn.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		ID:            txn.ID.String(),
		Date:          txn.Date.Format(valueobject.DateLayout),
		Description:   txn.Description,
		Amount:        money(txn.Amount),
		Type:          string(txn.Type),
		Category:      txn.Category.String(),
		PaymentMethod: string(txn.PaymentMethod),
		Tags:          tags,
		Notes:         txn.Notes,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of Transaction entities.
func ToTransactionResponses(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = ToTransactionResponse(txn)
	}
	return out
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  money(output.Totals.IncomeTotal),
			ExpenseTotal: money(output.Totals.ExpenseTotal),
			NetTotal:     money(output.Totals.NetTotal),
		},
	}
}
