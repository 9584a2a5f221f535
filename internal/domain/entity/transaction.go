// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodDebitCard    PaymentMethod = "Debit Card"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodOther        PaymentMethod = "Other"
)

// IsValid reports whether p is a known payment method.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodUPI, PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Transaction represents a single income or expense record.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Date          time.Time // Attributed calendar date, not creation time
	Description   string
	Amount        decimal.Decimal // Always non-negative, direction is carried by Type
	Type          TransactionType
	Category      Category
	PaymentMethod PaymentMethod
	Tags          []string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category Category,
	paymentMethod PaymentMethod,
	tags []string,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		Description:   description,
		Amount:        amount,
		Type:          transactionType,
		Category:      category,
		PaymentMethod: paymentMethod,
		Tags:          tags,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome reports whether the transaction is an income.
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}
