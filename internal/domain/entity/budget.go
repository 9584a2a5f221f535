package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// Budget is a monthly spending ceiling for one category.
// There is at most one budget per (user, category, month).
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  Category
	Amount    decimal.Decimal
	Month     valueobject.Month
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID uuid.UUID, category Category, amount decimal.Decimal, month valueobject.Month, notes string) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Amount:    amount,
		Month:     month,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
