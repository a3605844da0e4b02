package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the relay service
type Metrics struct {
	// Inbound request metrics
	RequestsTotal *prometheus.CounterVec

	// Pipeline stage metrics
	ResolutionsTotal   *prometheus.CounterVec
	FetchAttemptsTotal *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	PayloadBytes       prometheus.Histogram

	// Delivery metrics
	DeliveriesTotal  *prometheus.CounterVec
	OutcomesTotal    *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
}

var (
	// DefaultMetrics is registered on the default Prometheus registry
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_requests_total",
				Help: "Total number of inbound relay requests by trigger and result",
			},
			[]string{"trigger", "result"},
		),

		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_short_link_resolutions_total",
				Help: "Total number of short-link resolutions by result",
			},
			[]string{"result"},
		),
		FetchAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_fetch_attempts_total",
				Help: "Total number of mirror download attempts by result",
			},
			[]string{"result"},
		),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_fetch_attempt_duration_seconds",
			Help:    "Duration of single mirror download attempts in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		PayloadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_payload_bytes",
			Help:    "Size of accepted media payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 8),
		}),

		DeliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_deliveries_total",
				Help: "Total number of Bot API delivery calls by mode and result",
			},
			[]string{"mode", "result"},
		),
		OutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_outcomes_total",
				Help: "Total number of finished media requests by outcome status",
			},
			[]string{"status"},
		),
		PipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_pipeline_duration_seconds",
			Help:    "Duration of the full media pipeline in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// RecordRequest records an inbound request
func (m *Metrics) RecordRequest(trigger, result string) {
	m.RequestsTotal.WithLabelValues(trigger, result).Inc()
}

// RecordResolution records a short-link resolution attempt
func (m *Metrics) RecordResolution(success bool) {
	m.ResolutionsTotal.WithLabelValues(resultLabel(success)).Inc()
}

// RecordFetchAttempt records a single mirror attempt
func (m *Metrics) RecordFetchAttempt(result string, durationSeconds float64) {
	if result == "" {
		result = "unknown"
	}
	m.FetchAttemptsTotal.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(durationSeconds)
}

// RecordPayload records the size of an accepted payload
func (m *Metrics) RecordPayload(size int) {
	if size > 0 {
		m.PayloadBytes.Observe(float64(size))
	}
}

// RecordDelivery records a Bot API delivery call
func (m *Metrics) RecordDelivery(mode string, success bool) {
	m.DeliveriesTotal.WithLabelValues(mode, resultLabel(success)).Inc()
}

// RecordOutcome records the final outcome of a media request
func (m *Metrics) RecordOutcome(status string, durationSeconds float64) {
	m.OutcomesTotal.WithLabelValues(status).Inc()
	m.PipelineDuration.Observe(durationSeconds)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
