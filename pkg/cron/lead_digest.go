package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"apluscharge_backend/internal/model"
	"apluscharge_backend/pkg/database"
	"apluscharge_backend/pkg/email"
	"apluscharge_backend/pkg/logger"
)

const (
	digestWindow  = 24 * time.Hour
	digestTimeout = 30 * time.Second
)

type Notifier interface {
	Send(ctx context.Context, to, subject, html string)
}

// LeadDigest emails a count of the leads captured in the last 24 hours.
type LeadDigest struct {
	store     database.Store
	notifier  Notifier
	recipient string
	log       *zap.Logger
	now       func() time.Time
}

func NewLeadDigest(store database.Store, notifier Notifier, recipient string, log *zap.Logger) *LeadDigest {
	return &LeadDigest{
		store:     store,
		notifier:  notifier,
		recipient: recipient,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// Run sends nothing when no store is available or no lead arrived in the window.
func (d *LeadDigest) Run(ctx context.Context) {
	if d.store == nil {
		d.log.Warn("lead digest skipped", zap.Error(database.ErrStoreUnavailable))
		return
	}

	until := d.now()
	since := until.Add(-digestWindow)

	count, err := d.store.CountSince(ctx, model.LeadCollection, since)
	if err != nil {
		d.log.Error("could not count leads", zap.Error(err))
		return
	}
	if count == 0 {
		d.log.Info("no new leads, digest not sent")
		return
	}

	html, err := email.RenderLeadDigest(email.LeadDigestData{Count: count, Since: since, Until: until})
	if err != nil {
		d.log.Error("could not render lead digest", zap.Error(err))
		return
	}

	d.notifier.Send(ctx, d.recipient, fmt.Sprintf("Lead digest: %d new lead(s)", count), html)
	d.log.Info("lead digest sent", zap.Int64("count", count))
}

// Start schedules digest on a standard 5-field cron spec and starts the
// scheduler. Callers stop it on shutdown.
func Start(spec string, digest *LeadDigest) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		digest.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("could not schedule lead digest: %w", err)
	}

	c.Start()
	digest.log.Info("lead digest scheduled", zap.String("spec", spec))
	return c, nil
}
