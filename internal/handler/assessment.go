package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/service"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// AssessmentHandler implements the quality-of-life assessment endpoint
type AssessmentHandler struct {
	service *service.AssessmentService
	logger  *zap.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler
func NewAssessmentHandler(service *service.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  logger,
	}
}

// Record appends a quality-of-life assessment to a patient's history. The
// total score is always recomputed server-side from the sub-scores.
func (h *AssessmentHandler) Record(c *gin.Context) {
	var req struct {
		Scores model.AssessmentScores `json:"scores"`
		Notes  string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	record, err := h.service.Record(c.Request.Context(), c.Param("id"), req.Scores, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to record assessment")
		return
	}

	c.JSON(http.StatusCreated, record)
}
