package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mailgun/mailgun-go/v4"
)

type MailgunProvider struct {
	apiKey string
	domain string
	from   string
	client *mailgun.MailgunImpl
}

// NewMailgunProvider takes the API host without the version suffix, e.g.
// https://api.mailgun.net or https://api.eu.mailgun.net.
func NewMailgunProvider(apiKey, domain, baseURL, from string, httpClient *http.Client) *MailgunProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: SendTimeout}
	}

	mg := mailgun.NewMailgun(domain, apiKey)
	mg.SetAPIBase(strings.TrimRight(baseURL, "/") + "/v3")
	mg.SetClient(httpClient)

	return &MailgunProvider{
		apiKey: apiKey,
		domain: domain,
		from:   from,
		client: mg,
	}
}

func (p *MailgunProvider) Name() string { return "mailgun" }

// Configured needs both the key and the sending domain.
func (p *MailgunProvider) Configured() bool { return p.apiKey != "" && p.domain != "" }

func (p *MailgunProvider) Send(ctx context.Context, msg Message) error {
	m := p.client.NewMessage(p.from, msg.Subject, "", msg.To)
	m.SetHtml(msg.HTML)

	if _, _, err := p.client.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun API error: %w", err)
	}
	return nil
}
