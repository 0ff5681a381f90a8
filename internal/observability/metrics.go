package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	activityRecordsTotal  *prometheus.CounterVec
	notificationsFanout   prometheus.Counter
	unreadCacheRequests   *prometheus.CounterVec
	feedRequestsTotal     *prometheus.CounterVec
	feedLatencySeconds    prometheus.Histogram
	permissionChecksTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockroom_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_http_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		activityRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_activity_records_total",
			Help: "Total number of activity records appended, by action.",
		}, []string{"action"})

		notificationsFanout = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_notifications_fanout_total",
			Help: "Total number of per-user notifications created by fan-out.",
		})

		unreadCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_unread_cache_requests_total",
			Help: "Unread-count cache lookups by outcome.",
		}, []string{"outcome"})

		feedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_activity_feed_requests_total",
			Help: "Activity feed requests by cache outcome.",
		}, []string{"outcome"})

		feedLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockroom_activity_feed_latency_seconds",
			Help:    "Latency distribution for activity feed assembly.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		})

		permissionChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_permission_checks_total",
			Help: "Permission checks by outcome (allow, deny, config_error).",
		}, []string{"outcome"})

		prometheus.MustRegister(
			httpRequestsTotal, httpLatencySeconds, httpErrorsTotal,
			activityRecordsTotal, notificationsFanout, unreadCacheRequests,
			feedRequestsTotal, feedLatencySeconds, permissionChecksTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivityRecords exposes the counter for appended audit entries.
func ActivityRecords() *prometheus.CounterVec {
	RegisterMetrics()
	return activityRecordsTotal
}

// NotificationsFanout exposes the counter for fan-out notification writes.
func NotificationsFanout() prometheus.Counter {
	RegisterMetrics()
	return notificationsFanout
}

// UnreadCacheRequests exposes the unread-count cache outcome counter.
func UnreadCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return unreadCacheRequests
}

// FeedRequests exposes the activity feed cache outcome counter.
func FeedRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return feedRequestsTotal
}

// FeedLatency exposes the activity feed latency histogram.
func FeedLatency() prometheus.Histogram {
	RegisterMetrics()
	return feedLatencySeconds
}

// PermissionChecks exposes the permission check outcome counter.
func PermissionChecks() *prometheus.CounterVec {
	RegisterMetrics()
	return permissionChecksTotal
}
