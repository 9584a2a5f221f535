package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// UserRepository stores accounts. Lookups of a missing user return
// domainerror.ErrUserNotFound.
type UserRepository interface {
	// Create fails with domainerror.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete removes the user with everything they own, including tokens and
	// queued email.
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
