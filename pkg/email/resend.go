package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type ResendProvider struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
}

func NewResendProvider(apiKey, baseURL, from string, httpClient *http.Client) *ResendProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: SendTimeout}
	}
	return &ResendProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		from:       from,
		httpClient: httpClient,
	}
}

func (p *ResendProvider) Name() string { return "resend" }

func (p *ResendProvider) Configured() bool { return p.apiKey != "" }

func (p *ResendProvider) Send(ctx context.Context, msg Message) error {
	jsonData, err := json.Marshal(resendPayload{
		From:    p.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/emails", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse("resend", resp)
}
