package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	base, logBuf := logger.GetTestLogger(t)

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	TraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Len(t, traceID, shared.TraceIDLength*2)
	assert.Equal(t, traceID, rec.Header().Get(TraceIDHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	logger.AssertLogField(t, logBuf, "trace_id", traceID)
	logger.AssertLogField(t, logBuf, "status", float64(http.StatusTeapot))
}
