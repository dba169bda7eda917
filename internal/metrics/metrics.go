package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	WebhooksReceived  *prometheus.CounterVec
	PaymentsConfirmed prometheus.Counter
	EventsBroadcast   prometheus.Counter
	EventsDelivered   prometheus.Counter
	StreamsOpen       prometheus.Gauge
	SessionsActive    prometheus.Gauge

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge

	// System Metrics
	ServiceUptime    prometheus.Gauge
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shoppayment_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shoppayment_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		WebhooksReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shoppayment_webhooks_received_total",
				Help: "Total number of bank webhook notifications by outcome",
			},
			[]string{"outcome"},
		),
		PaymentsConfirmed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shoppayment_payments_confirmed_total",
				Help: "Total number of orders flipped to paid",
			},
		),
		EventsBroadcast: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shoppayment_events_broadcast_total",
				Help: "Total number of payment events broadcast",
			},
		),
		EventsDelivered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shoppayment_events_delivered_total",
				Help: "Total number of event deliveries to stream subscribers",
			},
		),
		StreamsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_streams_open",
				Help: "Number of open event stream connections",
			},
		),
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_sessions_active",
				Help: "Number of unexpired stream sessions",
			},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),

		ServiceUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shoppayment_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shoppayment_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordWebhook(outcome string) {
	m.WebhooksReceived.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPaymentConfirmed() {
	m.PaymentsConfirmed.Inc()
}

func (m *Metrics) RecordBroadcast(delivered int) {
	m.EventsBroadcast.Inc()
	m.EventsDelivered.Add(float64(delivered))
}

func (m *Metrics) StreamOpened() {
	m.StreamsOpen.Inc()
}

func (m *Metrics) StreamClosed() {
	m.StreamsOpen.Dec()
}

func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
}

func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
}
