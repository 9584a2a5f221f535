package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/manjeet0505/Expense/internal/domain/entity"
)

// TagList is a list of labels stored as a Postgres text array.
type TagList pq.StringArray

// GormDBDataType returns text[] on Postgres and plain text elsewhere.
func (TagList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src interface{}) error {
	return (*pq.StringArray)(t).Scan(src)
}

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	Date          time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	Description   string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	Category      string          `gorm:"type:varchar(32);not null;index"`
	PaymentMethod string          `gorm:"type:varchar(32);not null;default:'Cash'"`
	Tags          TagList
	Notes         string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Date:          m.Date.UTC(),
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          entity.TransactionType(m.Type),
		Category:      entity.Category(m.Category),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Tags:          tags,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:            transaction.ID,
		UserID:        transaction.UserID,
		Date:          transaction.Date,
		Description:   transaction.Description,
		Amount:        transaction.Amount,
		Type:          string(transaction.Type),
		Category:      string(transaction.Category),
		PaymentMethod: string(transaction.PaymentMethod),
		Tags:          TagList(transaction.Tags),
		Notes:         transaction.Notes,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
