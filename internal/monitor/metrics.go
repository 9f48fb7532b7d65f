package monitor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector aggregates the business and system metrics exposed
// on /metrics
type MetricsCollector struct {
	// business metrics
	orderTransitionTotal  *prometheus.CounterVec
	paymentResultTotal    *prometheus.CounterVec
	pointMovementTotal    *prometheus.CounterVec
	pointMovementPoints   *prometheus.CounterVec
	userRegistrationTotal *prometheus.CounterVec
	userLoginTotal        *prometheus.CounterVec

	// HTTP metrics
	httpRequestTotal    *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// database metrics
	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge

	// cache metrics
	cacheHitTotal  *prometheus.CounterVec
	cacheMissTotal *prometheus.CounterVec

	// runtime metrics
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
}

var (
	defaultCollector *MetricsCollector
	collectorOnce    sync.Once
)

// Default returns the process-wide collector
func Default() *MetricsCollector {
	collectorOnce.Do(func() {
		defaultCollector = newMetricsCollector()
	})
	return defaultCollector
}

func newMetricsCollector() *MetricsCollector {
	mc := &MetricsCollector{}

	mc.orderTransitionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transition_total",
			Help: "Total number of order status transitions",
		},
		[]string{"status"},
	)

	mc.paymentResultTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_result_total",
			Help: "Total number of recorded payment results",
		},
		[]string{"status"},
	)

	mc.pointMovementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_movement_total",
			Help: "Total number of reward point ledger entries",
		},
		[]string{"type"},
	)

	mc.pointMovementPoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_movement_points_total",
			Help: "Total reward points moved, by ledger entry type",
		},
		[]string{"type"},
	)

	mc.userRegistrationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_registration_total",
			Help: "Total number of user registrations",
		},
		[]string{"status"},
	)

	mc.userLoginTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_login_total",
			Help: "Total number of user logins",
		},
		[]string{"status"},
	)

	mc.httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	mc.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	mc.dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	mc.dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	mc.cacheHitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hit_total",
			Help: "Total number of local cache hits",
		},
		[]string{"cache"},
	)

	mc.cacheMissTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_miss_total",
			Help: "Total number of local cache misses",
		},
		[]string{"cache"},
	)

	mc.memoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memory_usage_bytes",
			Help: "Memory usage in bytes",
		},
	)

	mc.goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "goroutine_count",
			Help: "Number of goroutines",
		},
	)

	return mc
}

// RecordOrderTransition records an order reaching a status
func (mc *MetricsCollector) RecordOrderTransition(status string) {
	mc.orderTransitionTotal.WithLabelValues(status).Inc()
}

// RecordPaymentResult records a gateway result
func (mc *MetricsCollector) RecordPaymentResult(status string) {
	mc.paymentResultTotal.WithLabelValues(status).Inc()
}

// RecordPointMovement records a ledger entry and its magnitude
func (mc *MetricsCollector) RecordPointMovement(entryType string, points int64) {
	mc.pointMovementTotal.WithLabelValues(entryType).Inc()
	mc.pointMovementPoints.WithLabelValues(entryType).Add(float64(points))
}

// RecordUserRegistration records a registration attempt
func (mc *MetricsCollector) RecordUserRegistration(status string) {
	mc.userRegistrationTotal.WithLabelValues(status).Inc()
}

// RecordUserLogin records a login attempt
func (mc *MetricsCollector) RecordUserLogin(status string) {
	mc.userLoginTotal.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request
func (mc *MetricsCollector) RecordHTTPRequest(method, path, status string) {
	mc.httpRequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordHTTPDuration records HTTP request latency
func (mc *MetricsCollector) RecordHTTPDuration(method, path string, duration time.Duration) {
	mc.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// UpdateDBConnections updates database pool gauges
func (mc *MetricsCollector) UpdateDBConnections(active, idle int) {
	mc.dbConnectionsActive.Set(float64(active))
	mc.dbConnectionsIdle.Set(float64(idle))
}

// RecordCacheHit records a local cache hit
func (mc *MetricsCollector) RecordCacheHit(cache string) {
	mc.cacheHitTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a local cache miss
func (mc *MetricsCollector) RecordCacheMiss(cache string) {
	mc.cacheMissTotal.WithLabelValues(cache).Inc()
}

// UpdateSystemMetrics samples runtime stats
func (mc *MetricsCollector) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mc.memoryUsage.Set(float64(m.Alloc))
	mc.goroutineCount.Set(float64(runtime.NumGoroutine()))
}

// StartSystemMetricsCollection samples runtime stats on a ticker until
// the context is cancelled
func (mc *MetricsCollector) StartSystemMetricsCollection(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mc.UpdateSystemMetrics()
		}
	}
}

// Package-level forwarders used by the services.

// RecordOrderTransition records an order reaching a status
func RecordOrderTransition(status string) {
	Default().RecordOrderTransition(status)
}

// RecordPaymentResult records a gateway result
func RecordPaymentResult(status string) {
	Default().RecordPaymentResult(status)
}

// RecordPointMovement records a ledger entry and its magnitude
func RecordPointMovement(entryType string, points int64) {
	Default().RecordPointMovement(entryType, points)
}

// RecordUserRegistration records a registration attempt
func RecordUserRegistration(status string) {
	Default().RecordUserRegistration(status)
}

// RecordUserLogin records a login attempt
func RecordUserLogin(status string) {
	Default().RecordUserLogin(status)
}
