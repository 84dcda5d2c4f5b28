package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceExposesFormCounters(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodPost, "/api/enquiries", http.StatusCreated, 20*time.Millisecond)
	metrics.RecordSubmission("enquiries")
	metrics.RecordDuplicate("enquiries")
	metrics.RecordUpload("resume", "stored")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `form_submissions_total{form="enquiries"} 1`)
	assert.Contains(t, body, `form_duplicates_total{form="enquiries"} 1`)
	assert.Contains(t, body, `uploads_total{field="resume",outcome="stored"} 1`)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.RequestsTotal)
	assert.InDelta(t, 20, snapshot.AverageRequestDurationMs, 0.01)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.RecordSubmission("enquiries")
	metrics.ObserveDBQuery("enquiries", "insert", time.Millisecond)
	assert.Equal(t, MetricsSnapshot{}, metrics.Snapshot())

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
