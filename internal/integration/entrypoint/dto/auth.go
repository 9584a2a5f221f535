// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/manjeet0505/Expense/internal/domain/entity"

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
	TermsAccepted bool   `json:"terms_accepted" binding:"required"`
}

// LoginRequest is the body of POST /auth/login. RememberMe stretches the
// session, including every session rotated from it.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// TokenResponse carries a freshly issued session pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is a session pair plus the signed-in user.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// NewAuthResponse builds the register and login answer.
func NewAuthResponse(accessToken, refreshToken string, user *entity.User) AuthResponse {
	return AuthResponse{
		TokenResponse: TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken},
		User:          ToUserResponse(user),
	}
}
