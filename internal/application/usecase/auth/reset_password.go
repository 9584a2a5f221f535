package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// ResetPasswordInput represents the input for password reset.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordOutput represents the output of password reset.
type ResetPasswordOutput struct {
	Message string
}

// ResetPasswordUseCase handles password reset logic.
type ResetPasswordUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	resets    adapter.PasswordResetTokenService
	tokens    adapter.TokenService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	resets adapter.PasswordResetTokenService,
	tokens adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{users: users, passwords: passwords, resets: resets, tokens: tokens}
}

// Execute performs the password reset and signs the user out everywhere.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	grant, err := uc.resets.ValidateResetToken(ctx, input.Token)
	if errors.Is(err, domainerror.ErrInvalidResetToken) {
		return nil, reject(domainerror.ErrCodeInvalidResetToken, domainerror.ErrInvalidResetToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate reset token: %w", err)
	}

	now := time.Now().UTC()
	if now.After(grant.ExpiresAt) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}

	if err := checkPasswordStrength(uc.passwords, input.NewPassword); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByID(ctx, grant.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash, err := uc.passwords.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Spent before the update; of two concurrent resets only one gets past here.
	if err := uc.resets.ConsumeResetToken(ctx, input.Token); err != nil {
		if errors.Is(err, domainerror.ErrInvalidResetToken) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidResetToken,
				"password reset token was already used",
				err,
			)
		}
		return nil, fmt.Errorf("failed to spend reset token: %w", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	if err := uc.tokens.RevokeUserSessions(ctx, user.ID); err != nil {
		slog.Warn("Failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}

	return &ResetPasswordOutput{Message: "Password has been successfully reset"}, nil
}
