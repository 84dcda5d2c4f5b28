package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	ready   Pinger
}

// NewMetricsHandler constructs a metrics handler. ready may be nil.
func NewMetricsHandler(metrics *service.MetricsService, ready Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, ready: ready}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	response.OK(c, "Server is running", gin.H{"status": "ok", "timestamp": time.Now().UTC()})
}

// Ready reports 503 until the database answers a ping.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			response.Error(c, appErrors.Wrap(err, "NOT_READY", http.StatusServiceUnavailable, "Database is not reachable"))
			return
		}
	}
	response.OK(c, "Ready", gin.H{"status": "ready"})
}

// Stats returns a JSON snapshot of the in-process counters.
func (h *MetricsHandler) Stats(c *gin.Context) {
	response.OK(c, "Metrics snapshot", h.metrics.Snapshot())
}
