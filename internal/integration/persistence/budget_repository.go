// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Upsert stores the budget keyed by (user, category, month) and reports
// whether a row was inserted. On conflict the stored row keeps its id and
// budget is rewritten to carry it.
func (r *budgetRepository) Upsert(ctx context.Context, budget *entity.Budget) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Insert first so concurrent first writes cannot both claim creation.
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "month"}},
			DoNothing: true,
		}).Create(model.BudgetFromEntity(budget))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			created = true
			return nil
		}

		var existing model.BudgetModel
		if err := tx.
			Where("user_id = ? AND category = ? AND month = ?", budget.UserID, string(budget.Category), budget.Month.Start()).
			First(&existing).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&existing).Updates(map[string]any{
			"amount":     budget.Amount,
			"notes":      budget.Notes,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}

		budget.ID = existing.ID
		budget.CreatedAt = existing.CreatedAt
		budget.UpdatedAt = now
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser retrieves the budgets of a user ordered by category.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter adapter.BudgetFilter) ([]*entity.Budget, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Month != nil {
		query = query.Where("month = ?", filter.Month.Start())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}

	var budgetModels []model.BudgetModel
	if err := query.Order("category ASC, month DESC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// Delete removes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}
