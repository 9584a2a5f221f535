package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// SendEmailInput is one rendered message. Text may be empty.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// SendEmailResult is the provider's acknowledgement of an accepted email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender delivers a rendered message. Failures are *domainerror.EmailError
// values whose code says whether a retry can succeed.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues typed emails for the background worker. Queueing only
// persists the job; delivery happens later.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
	// QueueBudgetAlertEmail queues a warning or over-budget notice.
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) error
	// QueueContactMessage addresses the support inbox, replying to input.Email.
	QueueContactMessage(ctx context.Context, input QueueContactMessageInput) error
}

type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// BudgetAlertLevel distinguishes the warning band from an exceeded budget.
type BudgetAlertLevel string

const (
	BudgetAlertLevelWarning BudgetAlertLevel = "warning"
	BudgetAlertLevelOver    BudgetAlertLevel = "over"
)

// QueueBudgetAlertInput carries one tracker of the aggregated month stats.
type QueueBudgetAlertInput struct {
	UserID      string
	UserEmail   string
	UserName    string
	Category    string
	MonthLabel  string
	Level       BudgetAlertLevel
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
	PercentUsed decimal.Decimal
	BudgetsURL  string
}

type QueueContactMessageInput struct {
	Name    string
	Email   string
	Message string
}
