package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHealthchecker verifica que el object storage responda.
type StorageHealthchecker interface {
	Healthcheck(ctx context.Context) error
}

// HealthHandler mantiene dependencias para los endpoints de salud.
type HealthHandler struct {
	logger  *zap.Logger
	storage StorageHealthchecker
}

func NewHealthHandler(logger *zap.Logger, storage StorageHealthchecker) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		storage: storage,
	}
}

// Healthcheck maneja GET /health/healthcheck.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"server_status": "OK"})
}

// S3Healthcheck maneja GET /health/s3.
func (h *HealthHandler) S3Healthcheck(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "storage not configured"})
		return
	}
	if err := h.storage.Healthcheck(c.Request.Context()); err != nil {
		h.logger.Error("s3 healthcheck failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
