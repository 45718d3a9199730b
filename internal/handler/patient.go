package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jefflong/lzryek-followup/internal/service"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// PatientHandler implements the patient record API endpoints
type PatientHandler struct {
	service *service.PatientService
	logger  *zap.Logger
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(service *service.PatientService, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{
		service: service,
		logger:  logger,
	}
}

// List returns the patients matching the optional search query. The q
// parameter matches names, ID cards, phone numbers, diagnoses, syndromes
// and medication names; createdFrom/createdTo bound the record creation
// date.
func (h *PatientHandler) List(c *gin.Context) {
	query := service.ListQuery{Q: c.Query("q")}

	if from := c.Query("createdFrom"); from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid createdFrom date",
				Details: stringPtr(err.Error()),
			})
			return
		}
		query.CreatedFrom = d
	}
	if to := c.Query("createdTo"); to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid createdTo date",
				Details: stringPtr(err.Error()),
			})
			return
		}
		query.CreatedTo = d
	}

	patients, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list patients", zap.Error(err))
		respondError(c, err, "Failed to list patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// Get returns one patient by ID
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get patient")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Create registers a new patient from a form submission
func (h *PatientHandler) Create(c *gin.Context) {
	var draft model.PatientDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	patient, _, err := h.service.Save(c.Request.Context(), "", draft, false)
	if err != nil {
		respondError(c, err, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// Update replaces a patient's current-state fields without touching the
// visit history
func (h *PatientHandler) Update(c *gin.Context) {
	h.save(c, false)
}

// AddVisit updates the patient and appends one visit snapshot
func (h *PatientHandler) AddVisit(c *gin.Context) {
	h.save(c, true)
}

func (h *PatientHandler) save(c *gin.Context, newVisit bool) {
	var draft model.PatientDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	patient, outcome, err := h.service.Save(c.Request.Context(), c.Param("id"), draft, newVisit)
	if err != nil {
		respondError(c, err, "Failed to save patient")
		return
	}
	if outcome == service.OutcomeNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Patient not found",
		})
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Delete removes one patient. The confirm=true query parameter is
// mandatory; without it nothing is deleted.
func (h *PatientHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: "Deletion requires confirm=true",
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete patient")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteBatch removes a set of patients in one operation
func (h *PatientHandler) DeleteBatch(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Message: "Deletion requires confirm=true",
		})
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.service.DeleteMany(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err, "Failed to delete patients")
		return
	}

	h.logger.Info("patients deleted", zap.Int("count", len(req.IDs)))
	c.Status(http.StatusNoContent)
}
