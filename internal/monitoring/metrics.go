package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transport label values
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vertex_proxy_requests_total",
			Help: "Total number of requests",
		},
		[]string{"transport", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vertex_proxy_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"transport", "endpoint"},
	)

	AuthRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vertex_proxy_auth_rejections_total",
			Help: "Total number of requests rejected by the API key gate",
		},
		[]string{"transport", "reason"},
	)

	BackendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vertex_proxy_backend_errors_total",
			Help: "Total number of failed backend calls",
		},
		[]string{"operation"},
	)

	StreamChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vertex_proxy_stream_chunks_total",
			Help: "Total number of non-final stream chunks relayed to clients",
		},
		[]string{"transport"},
	)

	ClientBanned = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vertex_proxy_client_banned",
			Help: "Number of client addresses currently banned after repeated authentication failures",
		},
	)
)

type Metrics struct {
	enabled bool
}

func New(enabled bool) *Metrics {
	return &Metrics{
		enabled: enabled,
	}
}

func (m *Metrics) isEnabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) RecordRequest(transport, endpoint, status string, duration time.Duration) {
	if !m.isEnabled() {
		return
	}

	RequestsTotal.WithLabelValues(transport, endpoint, status).Inc()
	RequestDuration.WithLabelValues(transport, endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordAuthRejection(transport, reason string) {
	if !m.isEnabled() {
		return
	}
	AuthRejectionsTotal.WithLabelValues(transport, reason).Inc()
}

func (m *Metrics) RecordBackendError(operation string) {
	if !m.isEnabled() {
		return
	}
	BackendErrorsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordStreamChunks(transport string, count int) {
	if !m.isEnabled() || count <= 0 {
		return
	}
	StreamChunksTotal.WithLabelValues(transport).Add(float64(count))
}

func (m *Metrics) UpdateBannedClients(count int) {
	if !m.isEnabled() {
		return
	}
	ClientBanned.Set(float64(count))
}
