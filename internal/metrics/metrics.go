// Package metrics exposes Prometheus counters for notification dispatch and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the dispatcher, worker and request logger report to.
type Recorder interface {
	RecordPublished(kind string)
	RecordDropped(kind string)
	RecordDelivered(kind string)
	RecordFailed(kind string)
	RecordDispatchLatency(d time.Duration)
	RecordHTTPStatus(statusCode int)
}

type Collector struct {
	published  *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	delivered  *prometheus.CounterVec
	failed     *prometheus.CounterVec
	latency    prometheus.Histogram
	httpStatus *prometheus.CounterVec
}

// NewCollector registers the calendar metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_dispatch_published_total",
			Help: "Notification messages handed to the dispatch queue.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_dispatch_dropped_total",
			Help: "Notification messages that could not be queued.",
		}, []string{"kind"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_dispatch_delivered_total",
			Help: "Notification messages acknowledged by the notification service.",
		}, []string{"kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_dispatch_failed_total",
			Help: "Notification messages abandoned after all attempts.",
		}, []string{"kind"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "calendar_dispatch_latency_seconds",
			Help:    "Time from enqueue to the final delivery attempt.",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.published,
		c.dropped,
		c.delivered,
		c.failed,
		c.latency,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordPublished(kind string) {
	c.published.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordDropped(kind string) {
	c.dropped.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordDelivered(kind string) {
	c.delivered.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordFailed(kind string) {
	c.failed.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordDispatchLatency(d time.Duration) {
	c.latency.Observe(d.Seconds())
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordPublished(string)              {}
func (Nop) RecordDropped(string)                {}
func (Nop) RecordDelivered(string)              {}
func (Nop) RecordFailed(string)                 {}
func (Nop) RecordDispatchLatency(time.Duration) {}
func (Nop) RecordHTTPStatus(int)                {}

// Handler serves the Prometheus exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
