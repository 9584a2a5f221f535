package auth

import (
	"context"
	"log/slog"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase checks credentials and opens a session.
type LoginUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute signs the user in. Unknown email and wrong password fail the same way.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	user, err := uc.users.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		slog.Debug("Login attempt for unknown email", "error", err)
		return nil, invalidCredentials()
	}

	if err := uc.passwords.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		slog.Debug("Login attempt with wrong password", "user_id", user.ID)
		return nil, invalidCredentials()
	}

	return openSession(ctx, uc.tokens, user, input.RememberMe)
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
