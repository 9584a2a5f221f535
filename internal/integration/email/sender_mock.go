package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// LogSender records emails in memory instead of sending them. It is used when
// no Resend API key is configured and by tests.
type LogSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewLogSender creates a new in-memory email sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send implements the adapter.EmailSender interface.
func (m *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.isPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "email send failed", m.failErr)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("local-%d", len(m.sent)),
	}, nil
}

// Sent returns a copy of the emails sent so far.
func (m *LogSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

// SetFailure makes every following Send fail with err.
func (m *LogSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// Reset clears sent emails and failure configuration.
func (m *LogSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var _ adapter.EmailSender = (*LogSender)(nil)
