package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters for lead capture, email dispatch and ROI requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer      prometheus.Gatherer
	leadsTotal    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	roiTotal      prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apluscharge",
			Name:      "leads_created_total",
			Help:      "Lead submissions by outcome",
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apluscharge",
			Name:      "notifications_total",
			Help:      "Outbound email attempts by provider and outcome",
		}, []string{"provider", "status"}),
		roiTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "apluscharge",
			Name:      "roi_calculations_total",
			Help:      "ROI calculations served",
		}),
	}
	reg.MustRegister(m.leadsTotal, m.notifications, m.roiTotal)
	return m
}

func (m *Metrics) ObserveLead(status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveNotification(provider, status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(provider, status).Inc()
}

func (m *Metrics) ObserveROI() {
	if m == nil {
		return
	}
	m.roiTotal.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
