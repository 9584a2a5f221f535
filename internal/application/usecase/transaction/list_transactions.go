// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

const (
	// DefaultPageLimit is the page size used when none is requested.
	DefaultPageLimit = 10
	// MaxPageLimit is the largest page size a caller may request.
	MaxPageLimit = 100
	// RecentTransactionsLimit is the number of transactions returned by the recent listing.
	RecentTransactionsLimit = 5
)

// ListTransactionsInput filters a listing; nil filters match everything.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  *entity.Category
	Type      *entity.TransactionType
	Search    string
	Page      int
	Limit     int
}

type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Pagination   adapter.TransactionPagination
	Total        int64
	TotalPages   int
	Totals       adapter.TransactionTotals
}

type ListTransactionsUseCase struct {
	repo adapter.TransactionRepository
}

func NewListTransactionsUseCase(repo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{repo: repo}
}

// Execute returns one page of the filtered listing plus totals over the whole
// filter. Out-of-range paging is clamped rather than rejected.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	var (
		category entity.Category
		kind     entity.TransactionType
	)
	for _, err := range []error{
		patch(input.Category, checked(validateCategory), &category),
		patch(input.Type, checked(validateType), &kind),
	} {
		if err != nil {
			return nil, err
		}
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: calendarDate(input.StartDate),
		EndDate:   calendarDate(input.EndDate),
		Category:  input.Category,
		Type:      input.Type,
		Search:    input.Search,
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end date must not be before start date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	pagination := adapter.TransactionPagination{Page: max(input.Page, 1), Limit: min(limit, MaxPageLimit)}

	page, err := uc.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	totals, err := uc.repo.GetTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("summing transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: page.Transactions,
		Pagination:   pagination,
		Total:        page.Total,
		TotalPages:   page.TotalPages,
		Totals:       *totals,
	}, nil
}

func calendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.CalendarDate(*t)
	return &d
}

type GetRecentTransactionsInput struct {
	UserID uuid.UUID
}

// GetRecentTransactionsUseCase returns the latest RecentTransactionsLimit
// transactions, newest first.
type GetRecentTransactionsUseCase struct {
	repo adapter.TransactionRepository
}

func NewGetRecentTransactionsUseCase(repo adapter.TransactionRepository) *GetRecentTransactionsUseCase {
	return &GetRecentTransactionsUseCase{repo: repo}
}

func (uc *GetRecentTransactionsUseCase) Execute(ctx context.Context, input GetRecentTransactionsInput) ([]*entity.Transaction, error) {
	recent, err := uc.repo.FindRecent(ctx, input.UserID, RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("loading recent transactions: %w", err)
	}
	return recent, nil
}
