package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// BudgetFilter narrows a budget listing. Nil fields match everything.
type BudgetFilter struct {
	Month    *valueobject.Month
	Category *entity.Category
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Upsert stores the budget, replacing the amount and notes of an existing
	// budget with the same user, category and month. It reports whether a new
	// row was created and fills budget.ID with the stored row's ID.
	Upsert(ctx context.Context, budget *entity.Budget) (bool, error)

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUser retrieves the budgets of a user ordered by category.
	FindByUser(ctx context.Context, userID uuid.UUID, filter BudgetFilter) ([]*entity.Budget, error)

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
