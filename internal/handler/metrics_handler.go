package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/internal/dto"
	"github.com/noah-isme/gym-management-api/internal/service"
	"github.com/noah-isme/gym-management-api/pkg/response"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type cachePinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	db      pinger
	cache   cachePinger
	logger  *zap.Logger
}

// NewMetricsHandler constructs a metrics handler. cache may be nil.
func NewMetricsHandler(metrics *service.MetricsService, db pinger, cache cachePinger, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{metrics: metrics, db: db, cache: cache, logger: logger}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Root identifies the service.
func (h *MetricsHandler) Root(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": "Gym Management API", "status": "running"})
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := dto.HealthResponse{Status: "OK", Database: "connected", Timestamp: time.Now().UTC()}
	status := http.StatusOK
	if h.db == nil {
		body.Status, body.Database = "ERROR", "disconnected"
		status = http.StatusServiceUnavailable
	} else if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		body.Status, body.Database = "ERROR", "disconnected"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil && h.cache.Enabled() {
		body.Cache = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			h.logger.Warn("cache ping failed", zap.Error(err))
			body.Cache = "disconnected"
		}
	}
	response.JSON(c, status, body)
}
