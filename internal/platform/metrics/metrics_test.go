package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsExposition(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/tasks/{id}", http.StatusOK, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/tasks/{id}", http.StatusOK, 5*time.Millisecond)
	m.RecordAuthEvent("login", "unauthorized")
	m.RecordRateLimit("/auth/login", false)
	m.RecordRateLimit("/auth/login", true)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/tasks/{id}",status="200"} 2`)
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",route="/tasks/{id}"} 2`)
	assert.Contains(t, body, `auth_events_total{event="login",outcome="unauthorized"} 1`)
	assert.Contains(t, body, `rate_limiter_requests_total{endpoint="/auth/login"} 1`)
	assert.Contains(t, body, `rate_limiter_blocked_total{endpoint="/auth/login"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsAreIsolatedPerInstance(t *testing.T) {
	a, b := New(), New()
	a.RecordAuthEvent("register", "success")

	assert.NotContains(t, scrape(t, b), `auth_events_total{event="register"`)
}
