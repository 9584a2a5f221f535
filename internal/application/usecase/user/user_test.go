package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

func newUser() *entity.User {
	return entity.NewUser("asha@example.com", "Asha", "hashed", time.Now())
}

func TestGetProfile_NotFound(t *testing.T) {
	users := &mocks.UserRepository{}
	uc := NewGetProfileUseCase(users)
	u := newUser()

	users.On("FindByID", mock.Anything, u.ID).Return(nil, domainerror.ErrUserNotFound)

	_, err := uc.Execute(context.Background(), u.ID)

	var authErr *domainerror.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, domainerror.ErrCodeUserNotFound, authErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		input    func(*entity.User) UpdateProfileInput
		wantErr  error
		validate func(*testing.T, *entity.User)
	}{
		{
			name: "name and image",
			input: func(u *entity.User) UpdateProfileInput {
				return UpdateProfileInput{UserID: u.ID, Name: ptr(" Asha R "), ImageURL: ptr("https://cdn.example.com/a.png")}
			},
			validate: func(t *testing.T, u *entity.User) {
				assert.Equal(t, "Asha R", u.Name)
				assert.Equal(t, "https://cdn.example.com/a.png", u.ImageURL)
			},
		},
		{
			name: "clear image and mute alerts",
			input: func(u *entity.User) UpdateProfileInput {
				off := false
				return UpdateProfileInput{UserID: u.ID, ImageURL: ptr(""), BudgetAlerts: &off}
			},
			validate: func(t *testing.T, u *entity.User) {
				assert.Empty(t, u.ImageURL)
				assert.False(t, u.WantsBudgetAlerts())
			},
		},
		{
			name: "empty name",
			input: func(u *entity.User) UpdateProfileInput {
				return UpdateProfileInput{UserID: u.ID, Name: ptr("  ")}
			},
			wantErr: domainerror.ErrInvalidProfileName,
		},
		{
			name: "non http image",
			input: func(u *entity.User) UpdateProfileInput {
				return UpdateProfileInput{UserID: u.ID, ImageURL: ptr("ftp://example.com/a.png")}
			},
			wantErr: domainerror.ErrInvalidImageURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.UserRepository{}
			uc := NewUpdateProfileUseCase(users)
			u := newUser()

			users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
			users.On("Update", mock.Anything, u).Return(nil)

			got, err := uc.Execute(context.Background(), tt.input(u))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := &mocks.UserRepository{}
		passwords := &mocks.PasswordService{}
		tokens := &mocks.TokenService{}
		uc := NewChangePasswordUseCase(users, passwords, tokens)
		u := newUser()

		users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		passwords.On("VerifyPassword", "hashed", "current").Return(nil)
		passwords.On("ValidatePasswordStrength", "brandnewpass").Return(nil)
		passwords.On("HashPassword", "brandnewpass").Return("rehashed", nil)
		users.On("Update", mock.Anything, u).Return(nil)
		tokens.On("RevokeUserSessions", mock.Anything, u.ID).Return(nil)

		err := uc.Execute(context.Background(), ChangePasswordInput{UserID: u.ID, CurrentPassword: "current", NewPassword: "brandnewpass"})

		require.NoError(t, err)
		assert.Equal(t, "rehashed", u.PasswordHash)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := &mocks.UserRepository{}
		passwords := &mocks.PasswordService{}
		uc := NewChangePasswordUseCase(users, passwords, &mocks.TokenService{})
		u := newUser()

		users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		passwords.On("VerifyPassword", "hashed", "nope").Return(errors.New("mismatch"))

		err := uc.Execute(context.Background(), ChangePasswordInput{UserID: u.ID, CurrentPassword: "nope", NewPassword: "brandnewpass"})

		var authErr *domainerror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domainerror.ErrCodeIncorrectPassword, authErr.Code)
	})

	t.Run("weak new password keeps the old hash", func(t *testing.T) {
		users := &mocks.UserRepository{}
		passwords := &mocks.PasswordService{}
		uc := NewChangePasswordUseCase(users, passwords, &mocks.TokenService{})
		u := newUser()

		users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		passwords.On("VerifyPassword", "hashed", "current").Return(nil)
		passwords.On("ValidatePasswordStrength", "short").Return(errors.New("too short"))

		err := uc.Execute(context.Background(), ChangePasswordInput{UserID: u.ID, CurrentPassword: "current", NewPassword: "short"})

		require.ErrorIs(t, err, domainerror.ErrWeakPassword)
		assert.Equal(t, "hashed", u.PasswordHash)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := &mocks.UserRepository{}
		passwords := &mocks.PasswordService{}
		tokens := &mocks.TokenService{}
		cache := &mocks.StatsCache{}
		uc := NewDeleteAccountUseCase(users, passwords, tokens, cache)
		u := newUser()

		users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
		passwords.On("VerifyPassword", "hashed", "pw").Return(nil)
		tokens.On("RevokeUserSessions", mock.Anything, u.ID).Return(nil)
		users.On("Delete", mock.Anything, u.ID).Return(nil)
		cache.On("Invalidate", mock.Anything, u.ID).Return(nil)

		err := uc.Execute(context.Background(), DeleteAccountInput{UserID: u.ID, Password: "pw", Confirmation: DeleteConfirmation})

		require.NoError(t, err)
		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("bad confirmation", func(t *testing.T) {
		users := &mocks.UserRepository{}
		uc := NewDeleteAccountUseCase(users, &mocks.PasswordService{}, &mocks.TokenService{}, &mocks.StatsCache{})

		err := uc.Execute(context.Background(), DeleteAccountInput{Password: "pw", Confirmation: "delete"})

		var authErr *domainerror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domainerror.ErrCodeInvalidConfirmation, authErr.Code)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
