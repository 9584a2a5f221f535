package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// DeleteConfirmation is the text a client may send to confirm account deletion.
const DeleteConfirmation = "DELETE"

// DeleteAccountInput needs the password; Confirmation is optional but must
// match DeleteConfirmation when sent.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

type DeleteAccountUseCase struct {
	users      adapter.UserRepository
	passwords  adapter.PasswordService
	tokens     adapter.TokenService
	statsCache adapter.StatsCache
}

func NewDeleteAccountUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
	statsCache adapter.StatsCache,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{users: users, passwords: passwords, tokens: tokens, statsCache: statsCache}
}

// Execute deletes the user together with their transactions and budgets.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != "" && input.Confirmation != DeleteConfirmation {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			fmt.Sprintf("confirmation must be exactly '%s'", DeleteConfirmation),
			nil,
		)
	}

	user, err := findUser(ctx, uc.users, input.UserID)
	if err != nil {
		return err
	}
	if err := confirmPassword(uc.passwords, user, input.Password, "invalid password"); err != nil {
		return err
	}

	if err := uc.tokens.RevokeUserSessions(ctx, user.ID); err != nil {
		return fmt.Errorf("revoking sessions of user %s: %w", user.ID, err)
	}
	if err := uc.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("deleting user %s: %w", user.ID, err)
	}
	if err := uc.statsCache.Invalidate(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "cached stats of deleted user not dropped", "error", err, "user_id", user.ID)
	}

	slog.InfoContext(ctx, "user account deleted", "user_id", user.ID)
	return nil
}
