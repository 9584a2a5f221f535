package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// RegisterUserUseCase creates an account and signs it in.
type RegisterUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute validates the sign-up form, stores the user and opens a session.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*Session, error) {
	if !input.TermsAccepted {
		return nil, reject(domainerror.ErrCodeTermsNotAccepted, domainerror.ErrTermsNotAccepted)
	}
	email, err := normalizedEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := checkPasswordStrength(uc.passwords, input.Password); err != nil {
		return nil, err
	}

	taken, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		return nil, reject(domainerror.ErrCodeEmailExists, domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwords.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, hash, time.Now().UTC())
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("User registered", "user_id", user.ID)

	return openSession(ctx, uc.tokens, user, false)
}
