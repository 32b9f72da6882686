package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchtower_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "watchtower_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// MonitorCheckStatus counts probe outcomes by resulting status
	MonitorCheckStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchtower_monitor_check_status_total",
			Help: "Number of monitor checks by resulting status",
		},
		[]string{"status"},
	)

	// MonitorCheckDuration tracks how long a full check takes
	MonitorCheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "watchtower_monitor_check_duration_seconds",
			Help:    "Duration of monitor checks",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	NotificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchtower_notifications_published_total",
			Help: "Notification events queued to Kafka",
		},
		[]string{"type"},
	)
)

func Init() {
	prometheus.MustRegister(
		RequestCount,
		RequestDuration,
		MonitorCheckStatus,
		MonitorCheckDuration,
		NotificationsPublished,
	)
}
