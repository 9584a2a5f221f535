package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

func newTokenStore(t *testing.T) persistence.TokenStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RefreshTokenModel{}, &model.PasswordResetTokenModel{}))
	return persistence.NewTokenStore(db)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, svc.VerifyPassword(hash, "correct horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong horse"))
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "s3cretpass", nil},
		{"multibyte counts runes", "ññññññññ", nil},
		{"too short", "short", errPasswordTooShort},
		{"too long", string(make([]byte, 73)), errPasswordTooLong},
		{"blank", "          ", errPasswordBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", TokenDurations{Access: time.Minute, Refresh: time.Hour}, newTokenStore(t))
	ctx := context.Background()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.False(t, claims.RememberMe)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 5*time.Second)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "refresh tokens are not access tokens")
	_, err = svc.RotateRefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "access tokens cannot be rotated")
}

func TestTokenService_ExpiredAccessToken(t *testing.T) {
	ts := NewTokenService("secret", TokenDurations{Access: time.Minute}, newTokenStore(t))
	ctx := context.Background()

	pair, err := ts.GenerateTokenPair(ctx, uuid.New(), "ana@example.com", false)
	require.NoError(t, err)

	svc := ts.(*tokenService)
	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Minute) }

	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
	assert.NotErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenService_RememberMeSurvivesRotation(t *testing.T) {
	svc := NewTokenService("secret", TokenDurations{Access: time.Minute, Refresh: time.Hour}, newTokenStore(t))
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, uuid.New(), "ana@example.com", true)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.RememberMe)
	assert.WithinDuration(t, time.Now().Add(4*time.Minute), claims.ExpiresAt, 5*time.Second)

	rotated, err := svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err = svc.ValidateAccessToken(ctx, rotated.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.RememberMe)
	assert.WithinDuration(t, time.Now().Add(4*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	store := newTokenStore(t)
	issuer := NewTokenService("secret-a", TokenDurations{}, store)
	verifier := NewTokenService("secret-b", TokenDurations{}, store)

	pair, err := issuer.GenerateTokenPair(context.Background(), uuid.New(), "ana@example.com", false)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenService_Rotation(t *testing.T) {
	svc := NewTokenService("secret", TokenDurations{}, newTokenStore(t))
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)
	other, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)

	second, err := svc.RotateRefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.RotateRefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrRefreshTokenReused)

	// Reuse revoked every session of the user, including the fresh one.
	_, err = svc.RotateRefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	_, err = svc.RotateRefreshToken(ctx, other.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenService_Revocation(t *testing.T) {
	svc := NewTokenService("secret", TokenDurations{}, newTokenStore(t))
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(ctx, first.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, "never-issued"))
	_, err = svc.RotateRefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	require.NoError(t, svc.RevokeUserSessions(ctx, userID))
	_, err = svc.RotateRefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestPasswordResetTokenService(t *testing.T) {
	svc := NewPasswordResetTokenService(newTokenStore(t))
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateResetToken(ctx, userID, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, token.Token, 64)

	found, err := svc.ValidateResetToken(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)

	require.NoError(t, svc.ConsumeResetToken(ctx, token.Token))
	assert.ErrorIs(t, svc.ConsumeResetToken(ctx, token.Token), domainerror.ErrInvalidResetToken)

	_, err = svc.ValidateResetToken(ctx, token.Token)
	assert.ErrorIs(t, err, domainerror.ErrInvalidResetToken)
	_, err = svc.ValidateResetToken(ctx, "unknown")
	assert.ErrorIs(t, err, domainerror.ErrInvalidResetToken)
}

func TestTokenStore_KeepsOnlyDigests(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RefreshTokenModel{}, &model.PasswordResetTokenModel{}))
	store := persistence.NewTokenStore(db)
	ctx := context.Background()

	require.NoError(t, store.SaveRefresh(ctx, "raw-refresh", uuid.New(), time.Now().Add(time.Hour)))

	var row model.RefreshTokenModel
	require.NoError(t, db.First(&row).Error)
	assert.Len(t, row.TokenHash, 64)
	assert.NotContains(t, row.TokenHash, "raw-refresh")
}

func TestTokenStore_PurgeExpired(t *testing.T) {
	store := newTokenStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	require.NoError(t, store.SaveRefresh(ctx, "old", userID, now.Add(-time.Hour)))
	require.NoError(t, store.SaveRefresh(ctx, "fresh", userID, now.Add(time.Hour)))
	require.NoError(t, store.SaveReset(ctx, "old-reset", userID, "ana@example.com", now.Add(-time.Minute)))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	outcome, owner, err := store.SpendRefresh(ctx, "fresh", now)
	require.NoError(t, err)
	assert.Equal(t, persistence.RefreshSpent, outcome)
	assert.Equal(t, userID, owner)
}
