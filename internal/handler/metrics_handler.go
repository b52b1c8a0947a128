package handler

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seat-finder/internal/catalog"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	stats   func() catalog.Stats
	ready   atomic.Bool
}

// NewMetricsHandler constructs a metrics handler. stats may be nil.
func NewMetricsHandler(metrics *service.MetricsService, stats func() catalog.Stats) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, stats: stats}
}

// SetReady flips the readiness probe once the catalog and cache are initialised.
func (h *MetricsHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "metrics are disabled"))
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 until SetReady(true) has been called.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if !h.ready.Load() {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "catalog is still loading"))
		return
	}
	body := gin.H{"status": "ready"}
	if h.stats != nil {
		body["catalog"] = h.stats()
	}
	c.JSON(http.StatusOK, body)
}
