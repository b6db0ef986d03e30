package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"apluscharge_backend/pkg/config"
	"apluscharge_backend/pkg/logger"
	"apluscharge_backend/pkg/metrics"
)

const (
	// SendTimeout bounds a single delivery attempt.
	SendTimeout = 10 * time.Second
	SenderName  = "A Plus Charge"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Provider is one transactional email backend. Configured reports whether
// the credentials it needs are present.
type Provider interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

// Dispatcher delivers mail through the first configured provider. Delivery is
// best effort: Send never returns an error and never panics.
type Dispatcher struct {
	providers []Provider
	timeout   time.Duration
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher wires the providers in priority order: Resend, Mailgun, SendGrid.
func NewDispatcher(cfg config.EmailConfig, log *zap.Logger, m *metrics.Metrics) *Dispatcher {
	httpClient := &http.Client{Timeout: SendTimeout}
	from := FormatSender(cfg.FromEmail)

	return NewDispatcherWithProviders(log, m,
		NewResendProvider(cfg.ResendAPIKey, cfg.ResendAPIBase, from, httpClient),
		NewMailgunProvider(cfg.MailgunAPIKey, cfg.MailgunDomain, cfg.MailgunAPIBase, from, httpClient),
		NewSendGridProvider(cfg.SendGridAPIKey, cfg.SendGridAPIBase, cfg.FromEmail),
	)
}

func NewDispatcherWithProviders(log *zap.Logger, m *metrics.Metrics, providers ...Provider) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		timeout:   SendTimeout,
		log:       logger.OrNop(log),
		metrics:   m,
	}
}

// withTimeout returns a copy of d using a different per-attempt timeout.
func (d *Dispatcher) withTimeout(timeout time.Duration) *Dispatcher {
	cp := *d
	cp.timeout = timeout
	return &cp
}

// Provider returns the provider Send would use, or nil when none is configured.
func (d *Dispatcher) Provider() Provider {
	for _, p := range d.providers {
		if p != nil && p.Configured() {
			return p
		}
	}
	return nil
}

func (d *Dispatcher) Send(ctx context.Context, to, subject, html string) {
	provider := "none"
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("email provider panicked",
				zap.String("provider", provider),
				zap.String("subject", subject),
				zap.Any("panic", r))
			d.metrics.ObserveNotification(provider, "failed")
		}
	}()

	p := d.Provider()
	if p == nil {
		d.log.Debug("no email provider configured, skipping send", zap.String("subject", subject))
		d.metrics.ObserveNotification(provider, "skipped")
		return
	}
	provider = p.Name()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	err := p.Send(ctx, Message{To: to, Subject: subject, HTML: html})
	if err != nil {
		d.log.Warn("could not send email",
			zap.String("provider", provider),
			zap.String("subject", subject),
			zap.Error(err))
		d.metrics.ObserveNotification(provider, "failed")
		return
	}

	d.log.Info("email sent",
		zap.String("provider", provider),
		zap.String("subject", subject))
	d.metrics.ObserveNotification(provider, "sent")
}

func FormatSender(fromEmail string) string {
	return fmt.Sprintf("%s <%s>", SenderName, fromEmail)
}
