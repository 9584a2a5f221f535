// Package user contains profile and account use cases for the signed-in user.
package user

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/auth"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// MaxImageURLLength is the maximum allowed length of a profile image URL.
const MaxImageURLLength = 500

// UpdateProfileInput represents the input for a profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID             uuid.UUID
	Name               *string
	ImageURL           *string // Empty string clears the image
	EmailNotifications *bool
	BudgetAlerts       *bool
}

// UpdateProfileUseCase handles profile updates.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := auth.ValidateName(*input.Name)
		if err != nil {
			return nil, err
		}
		user.Name = name
	}

	if input.ImageURL != nil {
		imageURL, err := validateImageURL(*input.ImageURL)
		if err != nil {
			return nil, err
		}
		user.ImageURL = imageURL
	}

	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.BudgetAlerts != nil {
		user.BudgetAlerts = *input.BudgetAlerts
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func validateImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidImageURL,
		"image must be an http or https URL",
		domainerror.ErrInvalidImageURL,
	)
	if len(raw) > MaxImageURLLength {
		return "", invalid
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", invalid
	}
	return raw, nil
}
