package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manjeet0505/Expense/internal/domain/entity"
	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
// (user_id, category, month) is unique.
type BudgetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month,priority:1"`
	Category  string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_budgets_user_category_month,priority:2"`
	Month     time.Time       `gorm:"type:date;not null;uniqueIndex:idx_budgets_user_category_month,priority:3"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes     string          `gorm:"type:varchar(200)"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		UserID:    m.UserID,
		Category:  entity.Category(m.Category),
		Amount:    m.Amount,
		Month:     valueobject.MonthOf(m.Month.UTC()),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		UserID:    budget.UserID,
		Category:  string(budget.Category),
		Month:     budget.Month.Start(),
		Amount:    budget.Amount,
		Notes:     budget.Notes,
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}
