package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "code"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	requestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	requestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_size_bytes",
			Help:    "Size of HTTP requests in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path", "code"},
	)

	responseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "response_size_bytes",
			Help:    "Size of HTTP responses in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path", "code"},
	)

	errorRate = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "error_rate_total",
			Help: "Total number of HTTP errors",
		},
		[]string{"method", "path", "code"},
	)
)

// shouldCollectMetrics excludes infrastructure endpoints from metrics.
// Health probes dominate traffic and would skew every histogram while
// adding cardinality with no business value.
func shouldCollectMetrics(path string) bool {
	infrastructurePaths := []string{
		"/health",
		"/ready",
		"/metrics",
		"/readiness",
		"/liveness",
	}

	for _, skipPath := range infrastructurePaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}

	return true
}

// PrometheusMiddleware records request duration, counts, sizes and errors
// for every non-infrastructure route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		method := c.Request.Method
		path := c.Request.URL.Path

		if !shouldCollectMetrics(path) {
			c.Next()
			return
		}

		requestsInFlight.WithLabelValues(method, path).Inc()
		defer requestsInFlight.WithLabelValues(method, path).Dec()

		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		requestDuration.WithLabelValues(method, path, code).Observe(duration)
		requestTotal.WithLabelValues(method, path, code).Inc()

		if c.Request.ContentLength > 0 {
			requestSize.WithLabelValues(method, path, code).Observe(float64(c.Request.ContentLength))
		}
		responseSize.WithLabelValues(method, path, code).Observe(float64(c.Writer.Size()))

		if c.Writer.Status() >= 400 {
			errorRate.WithLabelValues(method, path, code).Inc()
		}
	}
}
