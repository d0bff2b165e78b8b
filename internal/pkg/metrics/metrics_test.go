package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordLogin(ResultSuccess)
	m.RecordLogin(ResultInvalidCredentials)
	m.RecordLogin(ResultInvalidCredentials)
	m.RecordRegistration(ResultConflict)
	m.RecordThrottleRejection()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(ResultInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues(ResultConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThrottleRejections))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(ResultSuccess)
		m.RecordRegistration(ResultError)
		m.RecordThrottleRejection()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordThrottleRejection()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "teacherauth_throttle_rejections_total 1")
}
