package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims are the verified contents of an access or refresh token.
type TokenClaims struct {
	UserID     uuid.UUID
	Email      string
	RememberMe bool
	ExpiresAt  time.Time
}

// TokenService issues and verifies session tokens.
//
// Rejected tokens are reported with errors wrapping domainerror.ErrInvalidToken;
// any other error is an infrastructure failure.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RotateRefreshToken spends a refresh token and issues a new pair with the
	// same lifetime class. Presenting an already spent token revokes every
	// session of its owner.
	RotateRefreshToken(ctx context.Context, token string) (*TokenPair, error)

	// RevokeRefreshToken ends the session behind token. Unknown tokens are ignored.
	RevokeRefreshToken(ctx context.Context, token string) error

	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetToken is an outstanding password reset grant.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService issues single-use password reset tokens.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// ValidateResetToken returns the grant behind an unused token without spending it.
	ValidateResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// ConsumeResetToken spends the token. Only one caller can spend a token;
	// the others get an error wrapping domainerror.ErrInvalidResetToken.
	ConsumeResetToken(ctx context.Context, token string) error
}
