// Package metrics exposes Prometheus counters for outbound API calls and
// session changes of the ScholarHub client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the transport and the session store report to.
type Recorder interface {
	RecordRequest(operation, method string, statusCode int, duration time.Duration)
	RecordSessionEvent(event string)
}

// Session event names.
const (
	EventSessionSet     = "set"
	EventSessionCleared = "cleared"
	EventSessionExpired = "expired"
)

// StatusTransportError labels requests that never got a response.
const StatusTransportError = "transport_error"

type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	sessionEvents *prometheus.CounterVec
}

// NewCollector creates the collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarhub_client_requests_total",
			Help: "API requests issued by the client, by operation, method and status.",
		}, []string{"operation", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scholarhub_client_request_duration_seconds",
			Help:    "Latency of API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarhub_client_session_events_total",
			Help: "Session store mutations by kind.",
		}, []string{"event"}),
	}

	reg.MustRegister(c.requests, c.latency, c.sessionEvents)

	return c
}

// RecordRequest counts one attempt. A statusCode of 0 means the request
// failed before a response arrived.
func (c *Collector) RecordRequest(operation, method string, statusCode int, duration time.Duration) {
	status := StatusTransportError
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	c.requests.WithLabelValues(operation, method, status).Inc()
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) RecordSessionEvent(event string) {
	c.sessionEvents.WithLabelValues(event).Inc()
}

// Handler serves the /metrics endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordSessionEvent(string)                        {}
