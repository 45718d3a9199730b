package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/service"
	"go.uber.org/zap"
)

// ReportHandler implements the printable report endpoint
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// PatientReport streams the PDF summary for one patient
func (h *ReportHandler) PatientReport(c *gin.Context) {
	data, filename, err := h.service.PatientReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to generate patient report",
			zap.Error(err),
			zap.String("patient_id", c.Param("id")),
		)
		respondError(c, err, "Failed to generate patient report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
