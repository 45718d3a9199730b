package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// csvHeaders is the fixed export column order.
var csvHeaders = []string{
	"Name", "Gender", "Birthday", "Age", "Allergies",
	"Family History", "Phone", "ID Card", "Diagnosis", "Medications",
}

// utf8BOM keeps spreadsheet tools from misreading the encoding.
const utf8BOM = "﻿"

// ImportMerge combines an incoming patient set into the existing one.
// Identity is the ID card number when non-empty, the record ID otherwise.
// The first record to claim an identity wins - whether it was already in
// the store or accepted earlier in the same import - and later claimants
// are dropped silently. Returns the merged collection and how many
// incoming records were actually added.
func ImportMerge(existing, incoming []model.Patient) ([]model.Patient, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Identity()] = struct{}{}
	}

	merged := append([]model.Patient(nil), existing...)
	added := 0
	for _, p := range incoming {
		identity := p.Identity()
		if _, dup := seen[identity]; dup {
			continue
		}
		seen[identity] = struct{}{}
		merged = append(merged, p)
		added++
	}
	return merged, added
}

// ImportExportService moves whole record sets in and out of the store.
type ImportExportService struct {
	store  *store.PatientStore
	logger *zap.Logger
}

// NewImportExportService creates a new ImportExportService.
func NewImportExportService(store *store.PatientStore, logger *zap.Logger) *ImportExportService {
	return &ImportExportService{
		store:  store,
		logger: logger,
	}
}

// Import parses a JSON patient list and merges it into the store. A
// payload that fails to parse, or contains a record with no usable
// identity, is rejected outright: the store is never touched by a partial
// merge.
func (s *ImportExportService) Import(ctx context.Context, payload []byte) (int, error) {
	var incoming []model.Patient
	if err := json.Unmarshal(payload, &incoming); err != nil {
		s.logger.Warn("import payload rejected", zap.Error(err))
		return 0, fmt.Errorf("%w: payload is not a patient list: %v", ErrValidation, err)
	}
	for i, p := range incoming {
		if p.Identity() == "" {
			return 0, fmt.Errorf("%w: record %d has neither an ID nor an ID card number", ErrValidation, i)
		}
	}

	existing, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	merged, added := ImportMerge(existing, incoming)
	if err := s.store.SaveAll(ctx, merged); err != nil {
		return 0, err
	}

	s.logger.Info("patients imported",
		zap.Int("incoming", len(incoming)),
		zap.Int("added", added),
		zap.Int("total", len(merged)),
	)
	return added, nil
}

// ExportCSV renders one row per patient in the fixed column order. Every
// cell is quote-wrapped with inner quotes doubled, the ID card number gets
// a leading apostrophe so spreadsheets keep it textual, and the whole file
// is prefixed with a UTF-8 byte-order mark.
func (s *ImportExportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	patients, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeCSVRow(&buf, csvHeaders)

	for _, p := range patients {
		writeCSVRow(&buf, []string{
			p.Name,
			string(p.Gender),
			p.Birthday.String(),
			fmt.Sprintf("%d", p.Age),
			p.Allergies,
			p.FamilyHistory,
			p.Phone,
			"'" + p.IDCard,
			p.Diagnosis,
			joinMedications(p.Medications),
		})
	}

	filename := fmt.Sprintf("Patients_Export_%s.csv", model.DateOf(time.Now()))
	s.logger.Info("CSV export generated",
		zap.Int("patients", len(patients)),
		zap.String("filename", filename),
	)
	return buf.Bytes(), filename, nil
}

func writeCSVRow(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

func joinMedications(meds []model.Medication) string {
	parts := make([]string, len(meds))
	for i, m := range meds {
		parts[i] = fmt.Sprintf("%s(%s %s)", m.Name, m.Usage, m.Dosage)
	}
	return strings.Join(parts, "; ")
}

// ExportBackup serializes the full collection as indented JSON.
func (s *ImportExportService) ExportBackup(ctx context.Context) ([]byte, string, error) {
	patients, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	data, err := json.MarshalIndent(patients, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode backup: %w", err)
	}

	filename := fmt.Sprintf("Full_Backup_%s.json", model.DateOf(time.Now()))
	s.logger.Info("backup export generated",
		zap.Int("patients", len(patients)),
		zap.String("filename", filename),
	)
	return data, filename, nil
}
