package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperationCounts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("create", "ok")
	m.ObserveOperation("create", "ok")
	m.ObserveOperation("create", "input")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("create", "input")))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest(http.MethodGet, "/api/appointments/:id", http.StatusNotFound, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/appointments/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestLatency))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("delete", "ok")
	m.ObserveRequest(http.MethodPost, "/api/auth/login", http.StatusOK, time.Second)
}
