package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	ToolFailures *prometheus.CounterVec

	// Drive metrics
	SessionsActive prometheus.Gauge
	CatalogEntries prometheus.Gauge

	// Snapshot metrics
	SnapshotsSaved    prometheus.Counter
	SnapshotsRestored prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Each collector carries its own registry so repeated construction
	// never trips duplicate registration on the global default.
	registry *prometheus.Registry

	// Running totals for the JSON API
	totalRequests  int64
	totalErrors    int64
	totalDuration  float64
	requestCount   int64
	activeSessions int64

	mu sync.RWMutex
}

// Stats is a point-in-time view of request activity for the JSON API.
type Stats struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveSessions    int64   `json:"active_sessions"`
	AvgRequestSeconds float64 `json:"avg_request_seconds"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Tool metrics
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_tool_calls_total",
				Help: "Total number of tool executions",
			},
			[]string{"provider", "tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drive_tool_duration_seconds",
				Help:    "Tool execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"provider", "tool"},
		),
		ToolFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drive_tool_failures_total",
				Help: "Total number of failed tool executions",
			},
			[]string{"provider", "tool"},
		),

		// Drive metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "drive_sessions_active",
				Help: "Number of active drive sessions",
			},
		),
		CatalogEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "drive_catalog_entries",
				Help: "Number of files in the catalog",
			},
		),

		// Snapshot metrics
		SnapshotsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drive_snapshots_saved_total",
				Help: "Total number of snapshots saved",
			},
		),
		SnapshotsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drive_snapshots_restored_total",
				Help: "Total number of snapshots restored",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "drive_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// Registry exposes the collector's registry for exposition handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update running totals
	m.mu.Lock()
	m.totalRequests++
	m.totalDuration += duration.Seconds()
	m.requestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.totalErrors++
	}
	m.mu.Unlock()
}

// RecordToolCall records a tool execution
func (m *Metrics) RecordToolCall(provider, tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(provider, tool, status).Inc()
	m.ToolDuration.WithLabelValues(provider, tool).Observe(duration.Seconds())
}

// RecordToolFailure records a failed tool execution
func (m *Metrics) RecordToolFailure(provider, tool string) {
	m.ToolFailures.WithLabelValues(provider, tool).Inc()
}

// SetSessionsActive sets the number of active sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.activeSessions = int64(count)
	m.mu.Unlock()
}

// SetCatalogEntries sets the number of catalog entries
func (m *Metrics) SetCatalogEntries(count int) {
	m.CatalogEntries.Set(float64(count))
}

// IncSnapshotsSaved increments the snapshots saved counter
func (m *Metrics) IncSnapshotsSaved() {
	m.SnapshotsSaved.Inc()
}

// IncSnapshotsRestored increments the snapshots restored counter
func (m *Metrics) IncSnapshotsRestored() {
	m.SnapshotsRestored.Inc()
}

// GetStats returns current activity totals for the JSON API.
func (m *Metrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := 0.0
	if m.requestCount > 0 {
		avg = m.totalDuration / float64(m.requestCount)
	}

	return Stats{
		TotalRequests:     m.totalRequests,
		TotalErrors:       m.totalErrors,
		ActiveSessions:    m.activeSessions,
		AvgRequestSeconds: avg,
		UptimeSeconds:     time.Since(m.startTime).Seconds(),
	}
}
