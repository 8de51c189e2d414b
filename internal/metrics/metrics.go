// Package metrics exposes Prometheus instrumentation for the API and the
// engine. Collectors register once at package init through promauto and are
// served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "perspective"

var (
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of requests currently being processed",
		},
	)

	SubmissionsGraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "submissions_graded_total",
			Help:      "Graded submissions by challenge type and verdict",
		},
		[]string{"type", "verdict"},
	)

	SelectionsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "daily_selections_total",
			Help:      "Fresh daily challenge selections by reason",
		},
		[]string{"reason"},
	)

	SnapshotSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "echo_snapshot_saves_total",
			Help:      "Echo Score snapshot save operations",
		},
	)
)

// Verdict converts a grading outcome into its metric label.
func Verdict(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}

// Middleware records count, duration and in-flight gauge for every request.
// Unmatched routes share one label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		RequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		RequestsInFlight.Dec()
		RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		RequestCounter.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
