package prometheus

import (
	"time"

	"cost-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Cost record CRUD metrics
	CostOperationsCounter prometheus.CounterVec

	// Aggregation query metrics
	AggregationQueriesCounter prometheus.CounterVec
	AggregationDuration       prometheus.HistogramVec

	// Soft-failure diagnostics emitted by aggregation queries
	DiagnosticsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Cost record CRUD metrics
	CostOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of cost record operations",
		},
		[]string{"operation"},
	)

	// Aggregation query metrics
	AggregationQueriesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_aggregation_queries_total",
			Help: "Total number of aggregation queries",
		},
		[]string{"query", "filter"},
	)

	AggregationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_aggregation_duration_seconds",
			Help:    "Duration of aggregation queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	// Diagnostics metrics
	DiagnosticsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_aggregation_diagnostics_total",
			Help: "Total number of soft failures reported by aggregation queries",
		},
		[]string{"kind"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCostOperation increments the counter for cost record operations
func RecordCostOperation(operation string) {
	CostOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAggregationQuery increments the counter for aggregation queries
func RecordAggregationQuery(query string, filter string) {
	AggregationQueriesCounter.WithLabelValues(query, filter).Inc()
}

// RecordDiagnostic increments the counter for aggregation diagnostics
func RecordDiagnostic(kind string) {
	DiagnosticsCounter.WithLabelValues(kind).Inc()
}
