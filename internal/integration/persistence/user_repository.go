// Package persistence implements the application repositories on gorm.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts user. A concurrent sign-up with the same email loses with
// ErrEmailAlreadyExists when the driver reports duplicate keys.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrEmailAlreadyExists
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.UserFromEntity(user)).Error
}

// Delete removes the user with their transactions, budgets, sessions and
// unsent email in one database transaction.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.UserModel
		err := tx.Select("id", "email").First(&user, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		for _, owned := range []any{
			&model.TransactionModel{},
			&model.BudgetModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}

		err = tx.Where("recipient_email = ? AND status = ?", user.Email, entity.EmailStatusPending).
			Delete(&model.EmailQueueModel{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&model.UserModel{}, "id = ?", id).Error
	})
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
