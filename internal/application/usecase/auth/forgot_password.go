package auth

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

// ResetLinkValidity is shown to the user in the password reset email.
const ResetLinkValidity = "1 hour"

// ForgotPasswordInput represents the input for forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles forgot password logic.
type ForgotPasswordUseCase struct {
	users      adapter.UserRepository
	resets     adapter.PasswordResetTokenService
	emails     adapter.EmailService
	appBaseURL string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	users adapter.UserRepository,
	resets adapter.PasswordResetTokenService,
	emails adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{users: users, resets: resets, emails: emails, appBaseURL: appBaseURL}
}

// Execute performs the forgot password request.
// Every well-formed email gets the same answer, whether or not an account exists.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email, err := normalizedEmail(input.Email)
	if err != nil {
		return nil, err
	}

	output := &ForgotPasswordOutput{Message: genericResetMessage}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Forgot password requested for unknown email")
		return output, nil
	}

	grant, err := uc.resets.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to generate reset token", "error", err, "user_id", user.ID)
		return output, nil
	}

	resetURL := uc.appBaseURL + "/reset-password?token=" + url.QueryEscape(grant.Token)

	if uc.emails == nil {
		slog.Info("Password reset token generated (email service not configured)",
			"user_id", user.ID,
			"reset_url", resetURL,
		)
		return output, nil
	}

	err = uc.emails.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  resetURL,
		ExpiresIn: ResetLinkValidity,
	})
	if err != nil {
		slog.Error("Failed to queue password reset email", "error", err, "user_id", user.ID)
	} else {
		slog.Info("Password reset email queued", "user_id", user.ID)
	}

	return output, nil
}
