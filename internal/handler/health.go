package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/store"
	"go.uber.org/zap"
)

// HealthHandler implements the liveness endpoint
type HealthHandler struct {
	kv     store.KV
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(kv store.KV, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		kv:     kv,
		logger: logger,
	}
}

// Check reports service liveness and record store reachability
func (h *HealthHandler) Check(c *gin.Context) {
	storage := "ok"
	status := http.StatusOK
	if _, _, err := h.kv.Get(c.Request.Context(), store.DefaultPatientsKey); err != nil {
		h.logger.Error("storage health check failed", zap.Error(err))
		storage = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":  "ok",
		"storage": storage,
	})
}
