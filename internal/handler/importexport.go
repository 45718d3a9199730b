package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/service"
	"go.uber.org/zap"
)

// maxImportBytes bounds the accepted import payload size.
const maxImportBytes = 32 << 20

// ImportExportHandler implements the bulk data endpoints
type ImportExportHandler struct {
	service *service.ImportExportService
	logger  *zap.Logger
}

// NewImportExportHandler creates a new ImportExportHandler
func NewImportExportHandler(service *service.ImportExportService, logger *zap.Logger) *ImportExportHandler {
	return &ImportExportHandler{
		service: service,
		logger:  logger,
	}
}

// Import merges a JSON patient list into the store and reports how many
// records were added
func (h *ImportExportHandler) Import(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		h.logger.Error("failed to read import payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to read request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	added, err := h.service.Import(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err, "Failed to import patients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Import completed",
		"added":   added,
	})
}

// ExportCSV streams the patient list as a spreadsheet-friendly CSV file
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to export CSV", zap.Error(err))
		respondError(c, err, "Failed to export CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportBackup streams the full collection as an indented JSON backup
func (h *ImportExportHandler) ExportBackup(c *gin.Context) {
	data, filename, err := h.service.ExportBackup(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to export backup", zap.Error(err))
		respondError(c, err, "Failed to export backup")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}
