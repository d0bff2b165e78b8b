package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values
const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultValidationError    = "validation_error"
	ResultConflict           = "conflict"
	ResultError              = "error"
)

// Metrics holds the service counters and the registry they are exposed from.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	LoginAttempts      *prometheus.CounterVec
	Registrations      *prometheus.CounterVec
	ThrottleRejections prometheus.Counter

	registry *prometheus.Registry
}

// New creates the counters on a fresh registry together with Go runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teacherauth_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teacherauth_registrations_total",
				Help: "Signup attempts by result",
			},
			[]string{"result"},
		),
		ThrottleRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teacherauth_throttle_rejections_total",
			Help: "Requests refused by the login throttle",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m.registry.MustRegister(m.LoginAttempts, m.Registrations, m.ThrottleRejections)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLogin counts one login attempt
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordRegistration counts one signup attempt
func (m *Metrics) RecordRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

// RecordThrottleRejection counts one refused request
func (m *Metrics) RecordThrottleRejection() {
	if m == nil {
		return
	}
	m.ThrottleRejections.Inc()
}
