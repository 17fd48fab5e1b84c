package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/documents/{id}", "404"))

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/documents/{id}", "404"))
	assert.Equal(t, before+2, after)
}

func TestRecordCompletion(t *testing.T) {
	okBefore := testutil.ToFloat64(completions.WithLabelValues("openai", "ok"))
	errBefore := testutil.ToFloat64(completions.WithLabelValues("openai", "error"))

	RecordCompletion("openai", 150*time.Millisecond, nil)
	RecordCompletion("openai", 20*time.Millisecond, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(completions.WithLabelValues("openai", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(completions.WithLabelValues("openai", "error")))
}

func TestMetricsHandler_Exposition(t *testing.T) {
	RecordRateLimited()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bizhub_ai_rate_limited_total")
}
