package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jefflong/lzryek-followup/internal/pdf"
	"github.com/jefflong/lzryek-followup/internal/store"
	"go.uber.org/zap"
)

// ReportService renders printable patient record summaries.
type ReportService struct {
	store  *store.PatientStore
	pdfGen *pdf.PDFGenerator
	logger *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(store *store.PatientStore, pdfGen *pdf.PDFGenerator, logger *zap.Logger) *ReportService {
	return &ReportService{
		store:  store,
		pdfGen: pdfGen,
		logger: logger,
	}
}

// PatientReport generates the PDF summary for one patient and returns the
// document bytes with a download filename.
func (s *ReportService) PatientReport(ctx context.Context, patientID string) ([]byte, string, error) {
	patient, ok, err := s.store.FindByID(ctx, patientID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}

	data, err := s.pdfGen.Generate(patient)
	if err != nil {
		s.logger.Error("failed to generate patient report",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		return nil, "", fmt.Errorf("failed to generate patient report: %w", err)
	}

	filename := fmt.Sprintf("Patient_Report_%s_%s.pdf", patient.Name, time.Now().Format("2006-01-02"))
	return data, filename, nil
}
