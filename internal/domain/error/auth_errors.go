package error

import (
	"errors"
	"fmt"
)

// Account and credential errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTermsNotAccepted   = errors.New("terms of service must be accepted")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidProfileName = errors.New("name must be between 1 and 100 characters")
	ErrInvalidImageURL    = errors.New("image must be an http or https URL")
)

// Session token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	// ErrRefreshTokenReused marks a spent refresh token presented again.
	// It matches ErrInvalidToken too.
	ErrRefreshTokenReused = fmt.Errorf("%w: refresh token already used", ErrInvalidToken)
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
)

// AuthErrorCode identifies an authentication failure as AUTH-XXYYYY, where XX
// is the area and YYYY the case.
type AuthErrorCode string

// Registration (01).
const (
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeTermsNotAccepted AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"
)

// Login (02).
const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
)

// Session tokens (03).
const (
	ErrCodeInvalidToken       AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken       AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken       AuthErrorCode = "AUTH-030003"
	ErrCodeRefreshTokenReused AuthErrorCode = "AUTH-030004"
)

// Password reset (04), account deletion (05) and profile (06).
const (
	ErrCodeInvalidResetToken   AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken   AuthErrorCode = "AUTH-040002"
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
	ErrCodeInvalidProfileName  AuthErrorCode = "AUTH-060001"
	ErrCodeInvalidImageURL     AuthErrorCode = "AUTH-060002"
	ErrCodeIncorrectPassword   AuthErrorCode = "AUTH-060003"
)

type AuthError = CodedError[AuthErrorCode]

// NewAuthError creates a new AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return coded(code, message, err)
}
