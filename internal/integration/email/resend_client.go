// Package email queues and delivers transactional email.
package email

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
)

// ResendClient sends email through the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SetBaseURL points the client at another Resend-compatible endpoint.
func (c *ResendClient) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// Send delivers one email. Failures carry ErrCodePermanentEmailFailure when
// retrying cannot help, ErrCodeTemporaryEmailFailure otherwise.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.fromName + " <" + c.fromEmail + ">",
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		ReplyTo: input.ReplyTo,
	})
	if err != nil {
		code := classifySendError(err)
		return nil, domainerror.NewEmailError(code, "resend rejected "+input.To, err)
	}
	return &adapter.SendEmailResult{MessageID: resp.Id}, nil
}

var statusPattern = regexp.MustCompile(`\b[45]\d\d\b`)

var permanentHints = []string{"unauthorized", "forbidden", "validation", "invalid"}

// classifySendError reads the HTTP status out of a Resend error. Client errors
// are permanent except timeouts and rate limits; anything unrecognised is
// retried.
func classifySendError(err error) domainerror.EmailErrorCode {
	msg := strings.ToLower(err.Error())

	if status := statusPattern.FindString(msg); status != "" {
		if status[0] == '4' && status != "408" && status != "429" {
			return domainerror.ErrCodePermanentEmailFailure
		}
		return domainerror.ErrCodeTemporaryEmailFailure
	}
	for _, hint := range permanentHints {
		if strings.Contains(msg, hint) {
			return domainerror.ErrCodePermanentEmailFailure
		}
	}
	return domainerror.ErrCodeTemporaryEmailFailure
}

var _ adapter.EmailSender = (*ResendClient)(nil)
