package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/adapter/mocks"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

func TestSendContactMessage_Queues(t *testing.T) {
	emails := &mocks.EmailService{}
	uc := NewSendContactMessageUseCase(emails)

	emails.On("QueueContactMessage", mock.Anything, adapter.QueueContactMessageInput{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Message: "The export button does nothing.",
	}).Return(nil)

	err := uc.Execute(context.Background(), SendContactMessageInput{
		Name:    " Ravi ",
		Email:   "Ravi@Example.com",
		Message: "The export button does nothing.\n",
	})

	require.NoError(t, err)
	emails.AssertExpectations(t)
}

func TestSendContactMessage_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SendContactMessageInput
	}{
		{name: "missing name", input: SendContactMessageInput{Email: "a@b.io", Message: "hi"}},
		{name: "bad email", input: SendContactMessageInput{Name: "A", Email: "nope", Message: "hi"}},
		{name: "empty message", input: SendContactMessageInput{Name: "A", Email: "a@b.io", Message: "  "}},
		{name: "long message", input: SendContactMessageInput{Name: "A", Email: "a@b.io", Message: strings.Repeat("x", MaxMessageLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := &mocks.EmailService{}
			uc := NewSendContactMessageUseCase(emails)

			err := uc.Execute(context.Background(), tt.input)

			require.ErrorIs(t, err, domainerror.ErrInvalidContactMessage)
			emails.AssertNotCalled(t, "QueueContactMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestSendContactMessage_QueueFailure(t *testing.T) {
	emails := &mocks.EmailService{}
	uc := NewSendContactMessageUseCase(emails)
	queueErr := errors.New("db down")

	emails.On("QueueContactMessage", mock.Anything, mock.Anything).Return(queueErr)

	err := uc.Execute(context.Background(), SendContactMessageInput{Name: "A", Email: "a@b.io", Message: "hi"})

	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeEmailQueueFailed, emailErr.Code)
	assert.ErrorIs(t, err, queueErr)
}
