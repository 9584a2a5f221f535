// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// MaxNameLength is the maximum number of characters in a display name.
const MaxNameLength = 100

// genericResetMessage is returned for every forgot-password request.
const genericResetMessage = "If an account with that email exists, we have sent a password reset link"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Session is a signed-in user and their token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email looks like an address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateName trims a display name and checks its length.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", reject(domainerror.ErrCodeInvalidProfileName, domainerror.ErrInvalidProfileName)
	}
	return name, nil
}

// reject builds an AuthError whose message is the sentinel's text.
func reject(code domainerror.AuthErrorCode, sentinel error) error {
	return domainerror.NewAuthError(code, sentinel.Error(), sentinel)
}

func normalizedEmail(raw string) (string, error) {
	email := NormalizeEmail(raw)
	if !IsValidEmail(email) {
		return "", reject(domainerror.ErrCodeInvalidEmail, domainerror.ErrInvalidEmail)
	}
	return email, nil
}

func checkPasswordStrength(passwords adapter.PasswordService, password string) error {
	if err := passwords.ValidatePasswordStrength(password); err != nil {
		return reject(domainerror.ErrCodeWeakPassword, domainerror.ErrWeakPassword)
	}
	return nil
}

func openSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*Session, error) {
	pair, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &Session{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}, nil
}
