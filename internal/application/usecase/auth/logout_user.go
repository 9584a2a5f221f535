package auth

import (
	"context"
	"log/slog"

	"github.com/manjeet0505/Expense/internal/application/adapter"
)

type LogoutUserInput struct {
	RefreshToken string
}

type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes the refresh token presented on logout.
type LogoutUserUseCase struct {
	tokens adapter.TokenService
}

func NewLogoutUserUseCase(tokens adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokens: tokens}
}

// Execute never fails: an unknown or already revoked token still ends the session.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if err := uc.tokens.RevokeRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.DebugContext(ctx, "refresh token not revoked on logout", "error", err)
	}
	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
