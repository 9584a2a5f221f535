// Package contact contains the contact form use case.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/auth"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

const (
	// MaxNameLength is the maximum length of the sender name.
	MaxNameLength = 100
	// MaxMessageLength is the maximum length of a contact message.
	MaxMessageLength = 5000
)

// SendContactMessageInput represents a contact form submission.
type SendContactMessageInput struct {
	Name    string
	Email   string
	Message string
}

// SendContactMessageUseCase queues contact form submissions for the support inbox.
type SendContactMessageUseCase struct {
	emailService adapter.EmailService
}

// NewSendContactMessageUseCase creates a new SendContactMessageUseCase instance.
func NewSendContactMessageUseCase(emailService adapter.EmailService) *SendContactMessageUseCase {
	return &SendContactMessageUseCase{
		emailService: emailService,
	}
}

// Execute validates the submission and queues it.
func (uc *SendContactMessageUseCase) Execute(ctx context.Context, input SendContactMessageInput) error {
	name := strings.TrimSpace(input.Name)
	email := auth.NormalizeEmail(input.Email)
	message := strings.TrimSpace(input.Message)

	switch {
	case name == "" || utf8.RuneCountInString(name) > MaxNameLength:
		return invalid(fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength))
	case !auth.IsValidEmail(email):
		return invalid("invalid email format")
	case message == "" || utf8.RuneCountInString(message) > MaxMessageLength:
		return invalid(fmt.Sprintf("message must be between 1 and %d characters", MaxMessageLength))
	}

	if err := uc.emailService.QueueContactMessage(ctx, adapter.QueueContactMessageInput{
		Name:    name,
		Email:   email,
		Message: message,
	}); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue contact message",
			err,
		)
	}

	slog.Info("Contact message queued")
	return nil
}

func invalid(message string) error {
	return domainerror.NewEmailError(
		domainerror.ErrCodeInvalidContactMessage,
		message,
		domainerror.ErrInvalidContactMessage,
	)
}
