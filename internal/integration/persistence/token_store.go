package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

// RefreshOutcome is the result of spending a refresh token.
type RefreshOutcome int

const (
	// RefreshSpent means the token was active and is now spent.
	RefreshSpent RefreshOutcome = iota
	// RefreshReplayed means the token was spent by an earlier rotation.
	RefreshReplayed
	// RefreshUnknown means the token was never issued, was revoked or has expired.
	RefreshUnknown
)

// ResetGrant is an unused password reset token as stored.
type ResetGrant struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenStore keeps session and reset tokens. Raw tokens never reach the
// database; rows are keyed by the token's SHA-256 digest.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	// SpendRefresh marks an active refresh token spent in one conditional update.
	SpendRefresh(ctx context.Context, token string, now time.Time) (RefreshOutcome, uuid.UUID, error)
	RevokeRefresh(ctx context.Context, token string) error
	RevokeUser(ctx context.Context, userID uuid.UUID) error

	SaveReset(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error
	// FindReset returns the grant behind an unused token, or nil.
	FindReset(ctx context.Context, token string) (*ResetGrant, error)
	// SpendReset marks an unused token used and reports whether this call did it.
	SpendReset(ctx context.Context, token string, now time.Time) (bool, error)

	// PurgeExpired deletes refresh and reset tokens that expired before cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type tokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a gorm-backed TokenStore.
func NewTokenStore(db *gorm.DB) TokenStore {
	return &tokenStore{db: db}
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *tokenStore) SaveRefresh(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return s.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: digest(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (s *tokenStore) SpendRefresh(ctx context.Context, token string, now time.Time) (RefreshOutcome, uuid.UUID, error) {
	hash := digest(token)

	var row model.RefreshTokenModel
	err := s.db.WithContext(ctx).Where("token_hash = ? AND expires_at > ?", hash, now).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RefreshUnknown, uuid.Nil, nil
	}
	if err != nil {
		return RefreshUnknown, uuid.Nil, err
	}

	res := s.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND spent_at IS NULL", row.ID).
		Update("spent_at", now)
	if res.Error != nil {
		return RefreshUnknown, uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return RefreshReplayed, row.UserID, nil
	}
	return RefreshSpent, row.UserID, nil
}

func (s *tokenStore) RevokeRefresh(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token_hash = ?", digest(token)).Delete(&model.RefreshTokenModel{}).Error
}

func (s *tokenStore) RevokeUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshTokenModel{}).Error
}

func (s *tokenStore) SaveReset(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	return s.db.WithContext(ctx).Create(&model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: digest(token),
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (s *tokenStore) FindReset(ctx context.Context, token string) (*ResetGrant, error) {
	var row model.PasswordResetTokenModel
	err := s.db.WithContext(ctx).Where("token_hash = ? AND used_at IS NULL", digest(token)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ResetGrant{UserID: row.UserID, Email: row.Email, ExpiresAt: row.ExpiresAt}, nil
}

func (s *tokenStore) SpendReset(ctx context.Context, token string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", digest(token), now).
		Update("used_at", now)
	return res.RowsAffected == 1, res.Error
}

func (s *tokenStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.RefreshTokenModel{}, &model.PasswordResetTokenModel{}} {
			res := tx.Where("expires_at < ?", cutoff).Delete(m)
			if res.Error != nil {
				return res.Error
			}
			purged += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return purged, nil
}
