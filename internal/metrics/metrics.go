package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admission outcomes recorded by SignupAdmissions.
const (
	OutcomeCreated     = "created"
	OutcomeUpdated     = "updated"
	OutcomeFull        = "full"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
	SignupAdmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_signup_admissions_total",
			Help: "Signup admission decisions by outcome",
		},
		[]string{"outcome"},
	)
)
