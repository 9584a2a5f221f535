// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// TransactionRepository is a mock of adapter.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

var _ adapter.TransactionRepository = (*TransactionRepository)(nil)

func (m *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	txn, _ := args.Get(0).(*entity.Transaction)
	return txn, args.Error(1)
}

func (m *TransactionRepository) FindByFilter(
	ctx context.Context,
	filter adapter.TransactionFilter,
	pagination adapter.TransactionPagination,
) (*adapter.TransactionListResult, error) {
	args := m.Called(ctx, filter, pagination)
	result, _ := args.Get(0).(*adapter.TransactionListResult)
	return result, args.Error(1)
}

func (m *TransactionRepository) FindByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	txns, _ := args.Get(0).([]*entity.Transaction)
	return txns, args.Error(1)
}

func (m *TransactionRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	txns, _ := args.Get(0).([]*entity.Transaction)
	return txns, args.Error(1)
}

func (m *TransactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	args := m.Called(ctx, filter)
	totals, _ := args.Get(0).(*adapter.TransactionTotals)
	return totals, args.Error(1)
}

func (m *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
