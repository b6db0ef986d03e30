package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	count      int64
	err        error
	collection string
	since      time.Time
}

func (s *countingStore) CreateDocument(context.Context, string, map[string]any) (string, error) {
	return "", errors.New("not implemented")
}

func (s *countingStore) CountSince(_ context.Context, collection string, since time.Time) (int64, error) {
	s.collection = collection
	s.since = since
	return s.count, s.err
}

func (s *countingStore) Name(context.Context) (string, error) { return "test", nil }

func (s *countingStore) ListCollections(context.Context) ([]string, error) { return nil, nil }

func (s *countingStore) Close(context.Context) error { return nil }

type sentMail struct {
	to, subject, html string
}

type recordingNotifier struct {
	sent []sentMail
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, html string) {
	n.sent = append(n.sent, sentMail{to: to, subject: subject, html: html})
}

func newTestDigest(store *countingStore, notifier *recordingNotifier, now time.Time) *LeadDigest {
	d := NewLeadDigest(store, notifier, "sales@example.com", nil)
	d.now = func() time.Time { return now }
	return d
}

func TestLeadDigestSendsCount(t *testing.T) {
	now := time.Date(2024, 5, 2, 19, 0, 0, 0, time.UTC)
	store := &countingStore{count: 3}
	notifier := &recordingNotifier{}

	newTestDigest(store, notifier, now).Run(context.Background())

	assert.Equal(t, "lead", store.collection)
	assert.Equal(t, now.Add(-24*time.Hour), store.since)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "sales@example.com", notifier.sent[0].to)
	assert.Equal(t, "Lead digest: 3 new lead(s)", notifier.sent[0].subject)
	assert.Contains(t, notifier.sent[0].html, "3 new website lead(s)")
}

func TestLeadDigestSkipsWhenNoLeads(t *testing.T) {
	notifier := &recordingNotifier{}

	newTestDigest(&countingStore{}, notifier, time.Now()).Run(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestLeadDigestSkipsOnCountError(t *testing.T) {
	notifier := &recordingNotifier{}

	newTestDigest(&countingStore{err: errors.New("boom")}, notifier, time.Now()).Run(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestLeadDigestWithoutStore(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewLeadDigest(nil, notifier, "sales@example.com", nil)

	assert.NotPanics(t, func() { d.Run(context.Background()) })
	assert.Empty(t, notifier.sent)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	_, err := Start("not a cron spec", NewLeadDigest(nil, &recordingNotifier{}, "", nil))
	assert.Error(t, err)
}

func TestStartSchedulesJob(t *testing.T) {
	c, err := Start("0 7 * * *", NewLeadDigest(nil, &recordingNotifier{}, "", nil))
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}
