package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTrace(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var traceID, requestID string
	handler := chimw.RequestID(Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		requestID = logger.RequestIDFromContext(r.Context())
		logger.FromContext(r.Context()).Info("handled")
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Len(t, traceID, 32)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, traceID, w.Header().Get(TraceHeader))

	entries, err := buf.GetLogEntries()
	assert.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, traceID, e["trace_id"])
	}
}
