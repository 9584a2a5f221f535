// Package model holds the gorm row types and their conversions to entities.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// UserModel is a row of users. Its fields mirror entity.User one for one, so
// the two types convert directly; keep them in the same order.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	ImageURL           string    `gorm:"type:varchar(500)"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	EmailNotifications bool      `gorm:"default:true"`
	BudgetAlerts       bool      `gorm:"default:true"`
	TermsAcceptedAt    time.Time `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToEntity() *entity.User {
	user := entity.User(*m)
	return &user
}

func UserFromEntity(user *entity.User) *UserModel {
	m := UserModel(*user)
	return &m
}
