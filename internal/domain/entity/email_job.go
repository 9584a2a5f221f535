package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered from.
type EmailTemplateType string

const (
	TemplatePasswordReset  EmailTemplateType = "password_reset"
	TemplateBudgetAlert    EmailTemplateType = "budget_alert"
	TemplateContactMessage EmailTemplateType = "contact_message"
)

// Waits between delivery attempts, per template. A job gets one attempt
// more than it has waits. Reset links expire, so they are not retried for long.
var retryBackoff = map[EmailTemplateType][]time.Duration{
	TemplatePasswordReset:  {30 * time.Second, 2 * time.Minute},
	TemplateBudgetAlert:    {time.Minute, 5 * time.Minute, 15 * time.Minute},
	TemplateContactMessage: {time.Minute, 10 * time.Minute, time.Hour, 6 * time.Hour},
}

var defaultBackoff = []time.Duration{time.Minute, 5 * time.Minute}

func backoffFor(t EmailTemplateType) []time.Duration {
	if waits, ok := retryBackoff[t]; ok {
		return waits
	}
	return defaultBackoff
}

// EmailJob is an outbound email held in the queue until a worker delivers it.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	ReplyTo        string
	Subject        string
	TemplateData   map[string]string
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	// ProviderMessageID is the id the email provider assigned on acceptance.
	ProviderMessageID string
	CreatedAt         time.Time
	NextAttemptAt     time.Time
	ClaimedAt         *time.Time
	CompletedAt       *time.Time
}

// NewEmailJob builds a pending job due immediately.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]string) *EmailJob {
	now := time.Now().UTC()
	if data == nil {
		data = map[string]string{}
	}
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    len(backoffFor(templateType)) + 1,
		CreatedAt:      now,
		NextAttemptAt:  now,
	}
}

// Due reports whether the job is waiting and its next attempt time has come.
func (e *EmailJob) Due(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.NextAttemptAt)
}

// Claim hands the job to a worker.
func (e *EmailJob) Claim(now time.Time) {
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &now
}

// Complete records a successful hand-off to the provider.
func (e *EmailJob) Complete(providerMessageID string, now time.Time) {
	e.Status = EmailStatusSent
	e.ProviderMessageID = providerMessageID
	e.LastError = ""
	e.ClaimedAt = nil
	e.CompletedAt = &now
}

// Fail records a failed attempt. The job goes back to pending with the
// template's next backoff unless the failure is permanent or attempts are used up.
func (e *EmailJob) Fail(err error, permanent bool, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()
	e.ClaimedAt = nil

	if permanent || e.Exhausted() {
		e.Status = EmailStatusFailed
		e.CompletedAt = &now
		return
	}

	waits := backoffFor(e.TemplateType)
	wait := waits[len(waits)-1]
	if e.Attempts-1 < len(waits) {
		wait = waits[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.NextAttemptAt = now.Add(wait)
}

// Exhausted reports whether every allowed attempt has been made.
func (e *EmailJob) Exhausted() bool {
	return e.Attempts >= e.MaxAttempts
}
