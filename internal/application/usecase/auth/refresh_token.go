package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

type RefreshTokenInput struct {
	RefreshToken string
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase exchanges a refresh token for a new pair.
type RefreshTokenUseCase struct {
	tokens adapter.TokenService
}

func NewRefreshTokenUseCase(tokens adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokens: tokens}
}

// Execute rotates the refresh token. Each refresh token works once.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	pair, err := uc.tokens.RotateRefreshToken(ctx, input.RefreshToken)
	switch {
	case err == nil:
		return &RefreshTokenOutput{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
	case errors.Is(err, domainerror.ErrRefreshTokenReused):
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeRefreshTokenReused,
			"refresh token was already used; please sign in again",
			err,
		)
	case errors.Is(err, domainerror.ErrExpiredToken):
		return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "refresh token has expired", err)
	case errors.Is(err, domainerror.ErrInvalidToken):
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid refresh token", err)
	default:
		return nil, fmt.Errorf("rotating refresh token: %w", err)
	}
}
