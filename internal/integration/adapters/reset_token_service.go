package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
)

// ResetTokenValidity is how long a password reset link stays usable.
const ResetTokenValidity = time.Hour

type passwordResetTokenService struct {
	store persistence.TokenStore
}

// NewPasswordResetTokenService creates a reset token service backed by store.
func NewPasswordResetTokenService(store persistence.TokenStore) adapter.PasswordResetTokenService {
	return &passwordResetTokenService{store: store}
}

// GenerateResetToken issues 32 random bytes, hex encoded.
func (s *passwordResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().UTC().Add(ResetTokenValidity)

	if err := s.store.SaveReset(ctx, token, userID, email, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}
	return &adapter.PasswordResetToken{Token: token, UserID: userID, Email: email, ExpiresAt: expiresAt}, nil
}

// ValidateResetToken returns expired grants too, so callers can tell the
// two failures apart.
func (s *passwordResetTokenService) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	grant, err := s.store.FindReset(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	if grant == nil {
		return nil, domainerror.ErrInvalidResetToken
	}
	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    grant.UserID,
		Email:     grant.Email,
		ExpiresAt: grant.ExpiresAt,
	}, nil
}

func (s *passwordResetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	spent, err := s.store.SpendReset(ctx, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to spend reset token: %w", err)
	}
	if !spent {
		return domainerror.ErrInvalidResetToken
	}
	return nil
}
