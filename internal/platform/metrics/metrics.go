package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	Logins        *prometheus.CounterVec
	Registrations *prometheus.CounterVec
	PagesRendered *prometheus.CounterVec
	QueryDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonline_logins_total",
			Help: "Login attempts by principal kind and outcome",
		}, []string{"kind", "outcome"}),
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonline_registrations_total",
			Help: "Completed registrations by principal kind",
		}, []string{"kind"}),
		PagesRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonline_pages_rendered_total",
			Help: "Server-rendered pages by page identifier",
		}, []string{"page"}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxonline_dashboard_query_duration_ms",
			Help:    "Latency of per-page dashboard query sets in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// ObserveLogin records a login attempt outcome.
func (m *Metrics) ObserveLogin(kind, outcome string) {
	m.Logins.WithLabelValues(kind, outcome).Inc()
}
