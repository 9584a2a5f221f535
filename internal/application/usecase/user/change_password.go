package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func NewChangePasswordUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute stores the new password and signs the user out everywhere. The
// access token of the calling session stays valid until it expires.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {
	user, err := findUser(ctx, uc.users, input.UserID)
	if err != nil {
		return err
	}
	if err := confirmPassword(uc.passwords, user, input.CurrentPassword, "current password is incorrect"); err != nil {
		return err
	}
	if uc.passwords.ValidatePasswordStrength(input.NewPassword) != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, domainerror.ErrWeakPassword.Error(), domainerror.ErrWeakPassword)
	}

	hash, err := uc.passwords.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return fmt.Errorf("saving password of user %s: %w", user.ID, err)
	}

	if err := uc.tokens.RevokeUserSessions(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "refresh tokens survived password change", "error", err, "user_id", user.ID)
	}
	return nil
}

// confirmPassword re-authenticates a signed-in user before a sensitive change.
func confirmPassword(passwords adapter.PasswordService, user *entity.User, password, message string) error {
	if passwords.VerifyPassword(user.PasswordHash, password) != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeIncorrectPassword, message, domainerror.ErrInvalidCredentials)
	}
	return nil
}
