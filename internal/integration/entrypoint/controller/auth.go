// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/application/usecase/auth"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/dto"
)

// AuthUseCases groups the use cases behind /auth.
type AuthUseCases struct {
	Register       *auth.RegisterUserUseCase
	Login          *auth.LoginUserUseCase
	Refresh        *auth.RefreshTokenUseCase
	Logout         *auth.LogoutUserUseCase
	ForgotPassword *auth.ForgotPasswordUseCase
	ResetPassword  *auth.ResetPasswordUseCase
}

// AuthController handles account creation and session endpoints.
type AuthController struct {
	uc AuthUseCases
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(uc AuthUseCases) *AuthController {
	return &AuthController{uc: uc}
}

// bindJSON decodes the body into req, answering 400 with code on failure.
func bindJSON(ctx *gin.Context, req any, code domainerror.AuthErrorCode) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		badRequest(ctx, "Invalid request body", string(code), err)
		return false
	}
	return true
}

// Register handles POST /auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	out, err := c.uc.Register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAuthResponse(out.AccessToken, out.RefreshToken, out.User))
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	out, err := c.uc.Login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAuthResponse(out.AccessToken, out.RefreshToken, out.User))
}

// RefreshToken handles POST /auth/refresh. The presented token is spent.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req, domainerror.ErrCodeMissingToken) {
		return
	}

	out, err := c.uc.Refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken})
}

// Logout handles POST /auth/logout. It always answers 200.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	_ = ctx.ShouldBindJSON(&req)

	out, _ := c.uc.Logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken})
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

// ForgotPassword handles POST /auth/forgot-password.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req, domainerror.ErrCodeInvalidEmail) {
		return
	}

	out, err := c.uc.ForgotPassword.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{Email: req.Email})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	out, err := c.uc.ResetPassword.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}
