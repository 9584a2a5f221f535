package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmailJob_Fail(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("budget alerts back off then give up", func(t *testing.T) {
		job := NewEmailJob(TemplateBudgetAlert, "ana@example.com", "Ana", "Food budget", nil)
		assert.Equal(t, 4, job.MaxAttempts)

		waits := []time.Duration{time.Minute, 5 * time.Minute, 15 * time.Minute}
		for i, wait := range waits {
			job.Claim(now)
			job.Fail(errors.New("timeout"), false, now)
			assert.Equal(t, EmailStatusPending, job.Status, "attempt %d", i+1)
			assert.Equal(t, now.Add(wait), job.NextAttemptAt, "attempt %d", i+1)
			assert.Nil(t, job.ClaimedAt)
		}

		job.Fail(errors.New("timeout"), false, now)
		assert.Equal(t, EmailStatusFailed, job.Status)
		assert.True(t, job.Exhausted())
		assert.NotNil(t, job.CompletedAt)
	})

	t.Run("password resets get fewer attempts", func(t *testing.T) {
		job := NewEmailJob(TemplatePasswordReset, "ana@example.com", "Ana", "Reset", nil)
		assert.Equal(t, 3, job.MaxAttempts)
	})

	t.Run("permanent failure stops at once", func(t *testing.T) {
		job := NewEmailJob(TemplateContactMessage, "support@example.com", "Support", "Hi", nil)
		job.Fail(errors.New("invalid recipient"), true, now)
		assert.Equal(t, EmailStatusFailed, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.Equal(t, "invalid recipient", job.LastError)
	})

	t.Run("unknown templates use the default backoff", func(t *testing.T) {
		job := NewEmailJob("newsletter", "ana@example.com", "Ana", "News", nil)
		assert.Equal(t, 3, job.MaxAttempts)
		job.Fail(errors.New("timeout"), false, now)
		assert.Equal(t, now.Add(time.Minute), job.NextAttemptAt)
	})
}

func TestEmailJob_Due(t *testing.T) {
	job := NewEmailJob(TemplateContactMessage, "support@example.com", "Support", "Hi", nil)
	now := job.NextAttemptAt

	assert.True(t, job.Due(now))
	assert.False(t, job.Due(now.Add(-time.Second)))

	job.Claim(now)
	assert.False(t, job.Due(now.Add(time.Hour)))

	job.Complete("re_1", now)
	assert.Equal(t, EmailStatusSent, job.Status)
	assert.Equal(t, "re_1", job.ProviderMessageID)
	assert.False(t, job.Due(now.Add(time.Hour)))
}
