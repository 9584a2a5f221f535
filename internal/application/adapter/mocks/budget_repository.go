package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// BudgetRepository is a mock of adapter.BudgetRepository.
type BudgetRepository struct {
	mock.Mock
}

var _ adapter.BudgetRepository = (*BudgetRepository)(nil)

func (m *BudgetRepository) Upsert(ctx context.Context, budget *entity.Budget) (bool, error) {
	args := m.Called(ctx, budget)
	return args.Bool(0), args.Error(1)
}

func (m *BudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	args := m.Called(ctx, id)
	budget, _ := args.Get(0).(*entity.Budget)
	return budget, args.Error(1)
}

func (m *BudgetRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter adapter.BudgetFilter) ([]*entity.Budget, error) {
	args := m.Called(ctx, userID, filter)
	budgets, _ := args.Get(0).([]*entity.Budget)
	return budgets, args.Error(1)
}

func (m *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
