package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func TestMetrics_RecordRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordRequest("webhook", "media")
	m.RecordRequest("webhook", "media")
	m.RecordRequest("direct", "accepted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("webhook", "media")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("direct", "accepted")))
}

func TestMetrics_RecordFetchAttempt(t *testing.T) {
	m := newTestMetrics()

	m.RecordFetchAttempt("ok", 0.2)
	m.RecordFetchAttempt("", 0.1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("unknown")))
}

func TestMetrics_RecordDeliveryAndOutcome(t *testing.T) {
	m := newTestMetrics()

	m.RecordDelivery("audio", false)
	m.RecordDelivery("message", true)
	m.RecordOutcome("fallback", 1.5)
	m.RecordResolution(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("audio", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("message", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("success")))
}

func TestMetrics_RecordPayload(t *testing.T) {
	m := newTestMetrics()

	// Non-positive sizes are ignored
	m.RecordPayload(0)
	m.RecordPayload(-1)
	m.RecordPayload(1024)

	assert.Equal(t, 1, testutil.CollectAndCount(m.PayloadBytes))
}

func TestGetDefaultMetrics_Singleton(t *testing.T) {
	assert.Same(t, GetDefaultMetrics(), GetDefaultMetrics())
}
