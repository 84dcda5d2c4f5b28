package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

func TestMetricsCountsRequests(t *testing.T) {
	metrics := service.NewMetricsService()
	r := newEngine(false)
	r.Use(Metrics(metrics))
	r.GET("/health", func(c *gin.Context) { response.OK(c, "ok", nil) })

	perform(r, http.MethodGet, "/health", nil, nil)
	perform(r, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}

func TestMetricsWithoutServiceIsNoop(t *testing.T) {
	r := newEngine(false)
	r.Use(Metrics(nil))
	r.GET("/health", func(c *gin.Context) { response.OK(c, "ok", nil) })

	w := perform(r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsSkipsScrapePath(t *testing.T) {
	metrics := service.NewMetricsService()
	r := newEngine(false)
	r.Use(Metrics(metrics, "/metrics"))
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { response.OK(c, "ok", nil) })

	perform(r, http.MethodGet, "/metrics", nil, nil)
	perform(r, http.MethodGet, "/health", nil, nil)
	perform(r, http.MethodGet, "/not-registered", nil, nil)

	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}
