package dto

import (
	"time"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	ImageURL           string    `json:"image_url,omitempty"`
	EmailNotifications bool      `json:"email_notifications"`
	BudgetAlerts       bool      `json:"budget_alerts"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		ImageURL:           user.ImageURL,
		EmailNotifications: user.EmailNotifications,
		BudgetAlerts:       user.BudgetAlerts,
		CreatedAt:          user.CreatedAt,
	}
}

// UpdateProfileRequest represents the request body for PATCH /users/me.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,max=100"`
	ImageURL           *string `json:"image_url,omitempty" binding:"omitempty,max=2048"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	BudgetAlerts       *bool   `json:"budget_alerts,omitempty"`
}

// ChangePasswordRequest represents the request body for POST /users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// DeleteAccountRequest represents the request body for DELETE /users/me.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation,omitempty"`
}

// ContactRequest represents the request body for POST /contact.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}
