package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds HTTP and database collectors shared across the service.
// Collectors are registered on the default prometheus registry and
// exposed via promhttp.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbOpenConns  prometheus.Gauge
	dbIdleConns  prometheus.Gauge
	dbInUseConns prometheus.Gauge
	dbWaitCount  prometheus.Gauge
}

// New creates and registers the service collectors.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of established database connections.",
			ConstLabels: constLabels,
		}),
		dbIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}),
		dbInUseConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_wait_total",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}),
	}
}

// IncHTTPRequest increments the request counter.
func (m *Metrics) IncHTTPRequest(method, path, status string) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveHTTPDuration records a request duration.
func (m *Metrics) ObserveHTTPDuration(method, path string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncDBQuery increments the query counter.
func (m *Metrics) IncDBQuery(operation, status string) {
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
}

// ObserveDBQueryDuration records a query duration.
func (m *Metrics) ObserveDBQueryDuration(operation string, seconds float64) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBPoolStats publishes connection pool gauges.
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// Domain counters, usable without wiring the Metrics collector through
// every constructor.
var (
	// BookingsCreated counts successfully persisted bookings.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_bookings_created_total",
		Help: "Total number of bookings created.",
	})

	// BookingsRejected counts admission rejections by reason.
	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_bookings_rejected_total",
		Help: "Total number of booking candidates rejected by the conflict validator.",
	}, []string{"reason"})

	// BookingsCancelled counts cancellations.
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_bookings_cancelled_total",
		Help: "Total number of bookings cancelled.",
	})

	// BookingsCompleted counts completed bookings.
	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_bookings_completed_total",
		Help: "Total number of bookings completed.",
	})

	// OccurrencesExpanded counts occurrences produced by recurrence expansion.
	OccurrencesExpanded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_recurrence_occurrences_total",
		Help: "Total number of occurrences produced by recurrence expansion.",
	})
)
