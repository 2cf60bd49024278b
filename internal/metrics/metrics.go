package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for history queries. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	fetchDuration   *prometheus.HistogramVec
	fetchTotal      *prometheus.CounterVec
	itemsFetched    *prometheus.CounterVec
	roundsTotal     *prometheus.CounterVec
	normalizedTotal *prometheus.CounterVec
	anomaliesTotal  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New creates and registers all collectors. If registry is nil,
// prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lendingscope_fetch_duration_seconds",
				Help:    "Duration of per-network transaction history fetches",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"chain_id"},
		),
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_fetch_total",
				Help: "Per-network transaction history fetches by status",
			},
			[]string{"chain_id", "status"},
		),
		itemsFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_items_fetched_total",
				Help: "Raw transactions received per network",
			},
			[]string{"chain_id"},
		),
		roundsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_rounds_total",
				Help: "Query rounds by outcome (published, superseded, invalid_address)",
			},
			[]string{"outcome"},
		),
		normalizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_normalized_total",
				Help: "Normalized transactions by type and classification source",
			},
			[]string{"type", "source"},
		),
		anomaliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_classification_anomalies_total",
				Help: "Records whose discriminator disagrees with the structural rules",
			},
			[]string{"discriminated", "structural"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendingscope_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
}

func (m *Metrics) ObserveFetch(chainID string, duration time.Duration, items int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.fetchDuration.WithLabelValues(chainID).Observe(duration.Seconds())
	m.fetchTotal.WithLabelValues(chainID, status).Inc()
	if items > 0 {
		m.itemsFetched.WithLabelValues(chainID).Add(float64(items))
	}
}

func (m *Metrics) RecordRound(outcome string) {
	if m == nil {
		return
	}
	m.roundsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordNormalized(txType, source string) {
	if m == nil {
		return
	}
	m.normalizedTotal.WithLabelValues(txType, source).Inc()
}

func (m *Metrics) RecordAnomaly(discriminated, structural string) {
	if m == nil {
		return
	}
	m.anomaliesTotal.WithLabelValues(discriminated, structural).Inc()
}

func (m *Metrics) RecordHTTP(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}
