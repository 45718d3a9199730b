package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jefflong/lzryek-followup/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// PDFGenerator renders patient record summaries
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// Generate creates a PDF summary of one patient record
func (g *PDFGenerator) Generate(patient model.Patient) ([]byte, error) {
	g.logger.Info("generating patient report",
		zap.String("patient_id", patient.ID),
		zap.Int("visit_count", len(patient.VisitHistory)),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, patient)
	g.addDemographics(pdf, patient)
	g.addClinicalSummary(pdf, patient.ClinicalSummary)
	g.addMedications(pdf, patient.Medications)
	g.addFollowUpPlan(pdf, patient.FollowUpConfig)
	g.addVisitHistory(pdf, patient.VisitHistory)
	g.addAssessmentHistory(pdf, patient.AssessmentHistory)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("patient report generated",
		zap.String("patient_id", patient.ID),
		zap.Int("size_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, patient model.Patient) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Epilepsy Follow-up Record", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Patient: %s", patient.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *PDFGenerator) addField(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", label, value), "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) addDemographics(pdf *gofpdf.Fpdf, patient model.Patient) {
	g.addSectionHeader(pdf, "Demographics")

	g.addField(pdf, "Gender", string(patient.Gender))
	g.addField(pdf, "Birthday", patient.Birthday.String())
	g.addField(pdf, "Age", fmt.Sprintf("%d", patient.Age))
	g.addField(pdf, "ID Card", patient.IDCard)
	g.addField(pdf, "Phone", patient.Phone)
	g.addField(pdf, "Allergies", patient.Allergies)
	g.addField(pdf, "Family History", patient.FamilyHistory)
	pdf.Ln(5)
}

func (g *PDFGenerator) addClinicalSummary(pdf *gofpdf.Fpdf, summary model.ClinicalSummary) {
	g.addSectionHeader(pdf, "Clinical Summary")

	g.addField(pdf, "Syndrome", summary.Syndrome)
	g.addField(pdf, "Seizure Type", summary.SeizureType)
	g.addField(pdf, "EEG", summary.EEG)
	g.addField(pdf, "MRI", summary.MRI)
	g.addField(pdf, "Genetic", summary.Genetic)
	g.addField(pdf, "Biochemical", summary.Biochemical)
	g.addField(pdf, "Other", summary.Other)
	pdf.Ln(5)
}

func (g *PDFGenerator) addMedications(pdf *gofpdf.Fpdf, medications []model.Medication) {
	g.addSectionHeader(pdf, "Medications")

	if len(medications) == 0 {
		pdf.CellFormat(0, 8, "No medications recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, med := range medications {
		pdf.SetFont("Arial", "B", 10)
		status := "active"
		if !med.Active() {
			status = "discontinued"
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", med.Name, status), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		if med.Usage != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Usage: %s", med.Usage), "", 1, "L", false, 0, "")
		}
		if med.Dosage != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Dosage: %s", med.Dosage), "", 1, "L", false, 0, "")
		}
		if !med.StartDate.IsZero() {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Start Date: %s", med.StartDate), "", 1, "L", false, 0, "")
		}
		if med.EndDate != nil && !med.EndDate.IsZero() {
			pdf.CellFormat(0, 5, fmt.Sprintf("  End Date: %s", med.EndDate), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}

func (g *PDFGenerator) addFollowUpPlan(pdf *gofpdf.Fpdf, config model.FollowUpConfig) {
	g.addSectionHeader(pdf, "Follow-up Plan")

	if len(config.Items) > 0 {
		g.addField(pdf, "Items", strings.Join(config.Items, ", "))
	}
	if config.IntervalMonths > 0 {
		g.addField(pdf, "Interval", fmt.Sprintf("%d months", config.IntervalMonths))
	}
	g.addField(pdf, "Last Follow-up", config.LastFollowUpDate.String())
	g.addField(pdf, "Next Follow-up", config.NextFollowUpDate.String())
	pdf.Ln(5)
}

func (g *PDFGenerator) addVisitHistory(pdf *gofpdf.Fpdf, visits []model.VisitRecord) {
	g.addSectionHeader(pdf, "Visit History")

	if len(visits) == 0 {
		pdf.CellFormat(0, 8, "No visits recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, visit := range visits {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, visit.Date.String(), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)

		if visit.ClinicalSummary.Syndrome != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Syndrome: %s", visit.ClinicalSummary.Syndrome), "", 1, "L", false, 0, "")
		}
		if visit.ClinicalSummary.SeizureType != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Seizure Type: %s", visit.ClinicalSummary.SeizureType), "", 1, "L", false, 0, "")
		}
		for _, med := range visit.Medications {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s %s %s", med.Name, med.Usage, med.Dosage), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

func (g *PDFGenerator) addAssessmentHistory(pdf *gofpdf.Fpdf, assessments []model.AssessmentRecord) {
	g.addSectionHeader(pdf, "Quality of Life Assessments")

	if len(assessments) == 0 {
		pdf.CellFormat(0, 8, "No assessments recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, a := range assessments {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - Total: %d/100", a.Date, a.TotalScore), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Emotional: %d, Social: %d, Seizure: %d, Side Effects: %d, Overall: %d",
			a.Scores.Emotional, a.Scores.Social, a.Scores.Seizure, a.Scores.SideEffect, a.Scores.Overall), "", 1, "L", false, 0, "")
		if a.Notes != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Notes: %s", a.Notes), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	pdf.Ln(5)
}
