package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// TransactionFilter narrows a user's transactions. Nil fields do not filter;
// date bounds are inclusive calendar dates.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  *entity.Category
	Type      *entity.TransactionType
	Search    string // matched case-insensitively against the description
}

type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult is one page of a filtered listing. TotalPages is at least 1.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals sums a whole filtered listing, not just the current page.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// TransactionRepository stores transactions. Deleted rows are hidden from every
// read. Lookups of a missing row return domainerror.ErrTransactionNotFound.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// FindByFilter returns a page ordered newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)
	// FindByUserAndDateRange returns every transaction dated in [startDate, endDate].
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*entity.Transaction, error)
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	// Delete is a soft delete.
	Delete(ctx context.Context, id uuid.UUID) error
}
