package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLead("success")
	m.ObserveNotification("resend", "sent")
	m.ObserveROI()
}

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveLead("success")
	m.ObserveLead("success")
	m.ObserveLead("error")
	m.ObserveNotification("mailgun", "failed")
	m.ObserveROI()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.leadsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leadsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("mailgun", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.roiTotal))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveROI()

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "apluscharge_roi_calculations_total 1")
}
