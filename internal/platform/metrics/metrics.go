package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated     prometheus.Counter
	Logins           prometheus.Counter
	LoginFailures    prometheus.Counter
	OTPsIssued       prometheus.Counter
	OTPsVerified     *prometheus.CounterVec
	URLsChecked      prometheus.Counter
	AuditDropped     prometheus.Counter
	TokenVerifyMs    prometheus.Histogram
	ScannerLatencyMs prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_users_created_total",
			Help: "Total number of users created in the system",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_logins_total",
			Help: "Total number of successful logins",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_login_failures_total",
			Help: "Total number of failed login attempts",
		}),
		OTPsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_otps_issued_total",
			Help: "Total number of OTP codes issued",
		}),
		OTPsVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phishguard_otp_verifications_total",
			Help: "OTP verification attempts by outcome",
		}, []string{"outcome"}),
		URLsChecked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_urls_checked_total",
			Help: "Total number of URLs sent to the classification service",
		}),
		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phishguard_audit_events_dropped_total",
			Help: "Audit events dropped because the queue was full",
		}),
		TokenVerifyMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishguard_token_verify_duration_ms",
			Help:    "Latency of session token verification in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
		ScannerLatencyMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishguard_scanner_roundtrip_duration_ms",
			Help:    "Latency of classification service round-trips in milliseconds",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
	}
}

// IncrementUsersCreated increments the users created counter by 1.
func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

// ObserveOTPVerification records one OTP verification attempt outcome.
func (m *Metrics) ObserveOTPVerification(outcome string) {
	m.OTPsVerified.WithLabelValues(outcome).Inc()
}
