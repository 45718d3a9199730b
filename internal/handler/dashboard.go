package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler implements the reminder and overview endpoints
type DashboardHandler struct {
	reminders *service.ReminderService
	dashboard *service.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reminders *service.ReminderService, dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		reminders: reminders,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Reminders returns the follow-up worklist, most overdue first
func (h *DashboardHandler) Reminders(c *gin.Context) {
	reminders, err := h.reminders.Upcoming(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute reminders", zap.Error(err))
		respondError(c, err, "Failed to compute reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// Summary returns cohort statistics and the reminder load
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard summary", zap.Error(err))
		respondError(c, err, "Failed to compute dashboard summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
