package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_DispatchCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPublished("event_created")
	c.RecordPublished("event_created")
	c.RecordPublished("invitation_sent")
	c.RecordDropped("invitation_sent")
	c.RecordDelivered("event_created")
	c.RecordFailed("invitation_sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.published.WithLabelValues("event_created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.published.WithLabelValues("invitation_sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dropped.WithLabelValues("invitation_sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.delivered.WithLabelValues("event_created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failed.WithLabelValues("invitation_sent")))
}

func TestCollector_Latency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDispatchLatency(150 * time.Millisecond)
	c.RecordDispatchLatency(2 * time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "calendar_dispatch_latency_seconds" {
			h := mf.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(2), h.GetSampleCount())
			assert.InDelta(t, 2.15, h.GetSampleSum(), 0.001)
			return
		}
	}
	t.Fatal("calendar_dispatch_latency_seconds not registered")
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPStatus(http.StatusCreated)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `calendar_http_responses_total{status_code="201"} 1`)
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordPublished("x")
	r.RecordHTTPStatus(500)
}
