package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
)

const (
	tokenIssuer = "expense-tracker"

	kindAccess  = "access"
	kindRefresh = "refresh"

	// Remember-me sessions live this many times longer.
	rememberMeFactor = 4
)

// TokenDurations holds the lifetimes of issued tokens.
type TokenDurations struct {
	Access  time.Duration
	Refresh time.Duration
}

// sessionClaims is the JWT payload of both token kinds.
type sessionClaims struct {
	Email      string `json:"email"`
	Kind       string `json:"kind"`
	RememberMe bool   `json:"remember_me,omitempty"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret    []byte
	durations TokenDurations
	store     persistence.TokenStore
	now       func() time.Time
}

// NewTokenService creates an HS256 JWT session service backed by store.
func NewTokenService(secret string, durations TokenDurations, store persistence.TokenStore) adapter.TokenService {
	if durations.Access <= 0 {
		durations.Access = 15 * time.Minute
	}
	if durations.Refresh <= 0 {
		durations.Refresh = 7 * 24 * time.Hour
	}
	return &tokenService{
		secret:    []byte(secret),
		durations: durations,
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	access, refresh := s.durations.Access, s.durations.Refresh
	if rememberMe {
		access *= rememberMeFactor
		refresh *= rememberMeFactor
	}
	now := s.now()

	accessToken, err := s.sign(userID, email, kindAccess, rememberMe, now, access)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.sign(userID, email, kindRefresh, rememberMe, now, refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.store.SaveRefresh(ctx, refreshToken, userID, now.Add(refresh)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &adapter.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindAccess)
}

func (s *tokenService) RotateRefreshToken(ctx context.Context, token string) (*adapter.TokenPair, error) {
	claims, err := s.verify(token, kindRefresh)
	if err != nil {
		return nil, err
	}

	outcome, owner, err := s.store.SpendRefresh(ctx, token, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to spend refresh token: %w", err)
	}

	switch outcome {
	case persistence.RefreshUnknown:
		return nil, fmt.Errorf("%w: refresh token revoked or unknown", domainerror.ErrInvalidToken)
	case persistence.RefreshReplayed:
		if err := s.store.RevokeUser(ctx, owner); err != nil {
			return nil, fmt.Errorf("failed to revoke sessions after refresh token reuse: %w", err)
		}
		slog.Warn("Refresh token reused, all sessions revoked", "user_id", owner)
		return nil, domainerror.ErrRefreshTokenReused
	}

	return s.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.RememberMe)
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.store.RevokeRefresh(ctx, token)
}

func (s *tokenService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeUser(ctx, userID)
}

func (s *tokenService) sign(userID uuid.UUID, email, kind string, rememberMe bool, now time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Email:      email,
		Kind:       kind,
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			// A fresh ID keeps pairs issued within the same second distinct.
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verify checks signature, issuer, expiry and kind. Expired tokens wrap
// domainerror.ErrExpiredToken; every other rejection wraps ErrInvalidToken.
func (s *tokenService) verify(raw, kind string) (*adapter.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected a %s token", domainerror.ErrInvalidToken, kind)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:     userID,
		Email:      claims.Email,
		RememberMe: claims.RememberMe,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
