package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

// PasswordService is a mock of adapter.PasswordService.
type PasswordService struct {
	mock.Mock
}

var _ adapter.PasswordService = (*PasswordService)(nil)

func (m *PasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordService) VerifyPassword(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

func (m *PasswordService) ValidatePasswordStrength(password string) error {
	args := m.Called(password)
	return args.Error(0)
}

// TokenService is a mock of adapter.TokenService.
type TokenService struct {
	mock.Mock
}

var _ adapter.TokenService = (*TokenService)(nil)

func (m *TokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	args := m.Called(ctx, userID, email, rememberMe)
	pair, _ := args.Get(0).(*adapter.TokenPair)
	return pair, args.Error(1)
}

func (m *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*adapter.TokenClaims)
	return claims, args.Error(1)
}

func (m *TokenService) RotateRefreshToken(ctx context.Context, token string) (*adapter.TokenPair, error) {
	args := m.Called(ctx, token)
	pair, _ := args.Get(0).(*adapter.TokenPair)
	return pair, args.Error(1)
}

func (m *TokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *TokenService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// PasswordResetTokenService is a mock of adapter.PasswordResetTokenService.
type PasswordResetTokenService struct {
	mock.Mock
}

var _ adapter.PasswordResetTokenService = (*PasswordResetTokenService)(nil)

func (m *PasswordResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	args := m.Called(ctx, userID, email)
	token, _ := args.Get(0).(*adapter.PasswordResetToken)
	return token, args.Error(1)
}

func (m *PasswordResetTokenService) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	resetToken, _ := args.Get(0).(*adapter.PasswordResetToken)
	return resetToken, args.Error(1)
}

func (m *PasswordResetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
