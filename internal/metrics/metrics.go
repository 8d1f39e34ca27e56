package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
	)

	otpGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_generated_total",
			Help: "Total number of OTP codes generated",
		},
		[]string{"method"}, // sms
	)

	otpVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verified_total",
			Help: "Total number of OTP verifications",
		},
		[]string{"status"}, // success, failure
	)

	leadSessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_sessions_started_total",
			Help: "Total number of inquiry form sessions started",
		},
	)

	leadSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_sessions_active",
			Help: "Number of live inquiry form sessions",
		},
	)
)

// GinMiddleware records request counts and latency per route
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, status).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordContactSubmission records a new contact form submission
func RecordContactSubmission() {
	contactSubmissionsTotal.Inc()
}

// RecordOTPGenerated records OTP generation
func RecordOTPGenerated(method string) {
	otpGeneratedTotal.WithLabelValues(method).Inc()
}

// RecordOTPVerified records OTP verification
func RecordOTPVerified(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	otpVerifiedTotal.WithLabelValues(status).Inc()
}

// RecordLeadSessionStarted records a new inquiry form session
func RecordLeadSessionStarted() {
	leadSessionsStarted.Inc()
}

// SetActiveLeadSessions updates the live session gauge
func SetActiveLeadSessions(n int) {
	leadSessionsActive.Set(float64(n))
}
