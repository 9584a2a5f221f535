// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

const subjectSuffix = " - Expense Tracker"

// Service handles email queueing operations.
type Service struct {
	queue        adapter.EmailQueueRepository
	supportEmail string
}

// NewService creates a new email service. Contact messages are delivered to supportEmail.
func NewService(queue adapter.EmailQueueRepository, supportEmail string) *Service {
	return &Service{
		queue:        queue,
		supportEmail: supportEmail,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	templateData := map[string]string{
		"user_name":  input.UserName,
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		"Reset your password"+subjectSuffix,
		templateData,
	)

	return s.enqueue(ctx, job, "password reset")
}

// QueueBudgetAlertEmail queues a budget alert email.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	subject := fmt.Sprintf("%s budget at %s%% for %s", input.Category, input.PercentUsed.StringFixed(0), input.MonthLabel)
	if input.Level == adapter.BudgetAlertLevelOver {
		subject = fmt.Sprintf("%s budget exceeded for %s", input.Category, input.MonthLabel)
	}

	templateData := map[string]string{
		"user_name":    input.UserName,
		"category":     input.Category,
		"month_label":  input.MonthLabel,
		"level":        string(input.Level),
		"budgeted":     input.Budgeted.StringFixed(2),
		"spent":        input.Spent.StringFixed(2),
		"percent_used": input.PercentUsed.StringFixed(2),
		"budgets_url":  input.BudgetsURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateBudgetAlert,
		input.UserEmail,
		input.UserName,
		subject+subjectSuffix,
		templateData,
	)

	return s.enqueue(ctx, job, "budget alert")
}

// QueueContactMessage queues a contact form message to the support inbox.
// Replies go to the sender.
func (s *Service) QueueContactMessage(ctx context.Context, input adapter.QueueContactMessageInput) error {
	templateData := map[string]string{
		"sender_name":  input.Name,
		"sender_email": input.Email,
		"message":      input.Message,
	}

	job := entity.NewEmailJob(
		entity.TemplateContactMessage,
		s.supportEmail,
		"Support",
		"Contact form: "+input.Name+subjectSuffix,
		templateData,
	)
	job.ReplyTo = input.Email

	return s.enqueue(ctx, job, "contact message")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, kind string) error {
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue "+kind+" email",
			err,
		)
	}
	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
