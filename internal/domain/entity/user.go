package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Email is stored normalized (trimmed, lower case).
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	ImageURL     string
	PasswordHash string
	// EmailNotifications is the master switch; BudgetAlerts narrows it.
	EmailNotifications bool
	BudgetAlerts       bool
	TermsAcceptedAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser returns an account with notifications enabled.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		EmailNotifications: true,
		BudgetAlerts:       true,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (u *User) WantsBudgetAlerts() bool {
	return u.EmailNotifications && u.BudgetAlerts
}
