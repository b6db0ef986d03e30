package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridProvider struct {
	client    *sendgrid.Client
	fromEmail string
}

// NewSendGridProvider leaves the client nil when apiKey is empty, which marks
// the provider as not configured.
func NewSendGridProvider(apiKey, baseURL, fromEmail string) *SendGridProvider {
	p := &SendGridProvider{fromEmail: fromEmail}
	if apiKey == "" {
		return p
	}

	client := sendgrid.NewSendClient(apiKey)
	if baseURL != "" {
		client.BaseURL = strings.TrimRight(baseURL, "/") + "/v3/mail/send"
	}
	p.client = client
	return p
}

func (p *SendGridProvider) Name() string { return "sendgrid" }

func (p *SendGridProvider) Configured() bool { return p.client != nil }

func (p *SendGridProvider) Send(ctx context.Context, msg Message) error {
	if p.client == nil {
		return fmt.Errorf("sendgrid client not configured")
	}

	from := mail.NewEmail(SenderName, p.fromEmail)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid API error: status %d: %s", resp.StatusCode, truncate(resp.Body, maxErrorBody))
	}
	return nil
}
