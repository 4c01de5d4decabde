package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "churchconnect_http_requests_total", Help: "Total HTTP requests by route and status"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "churchconnect_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "churchconnect_login_attempts_total", Help: "Admin login attempts by result"},
		[]string{"result"},
	)
	EventRegistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "churchconnect_event_registrations_total", Help: "Event registrations by result"},
		[]string{"result"},
	)
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "churchconnect_validation_failures_total", Help: "Rejected inputs by failure kind"},
		[]string{"kind"},
	)
)

var once sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, LoginAttempts, EventRegistrations, ValidationFailures)
	})
}
