package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// PatientStore persists the patient collection as a single JSON blob in a
// KV backend. All derived operations are defined purely in terms of
// GetAll and SaveAll.
type PatientStore struct {
	kv     KV
	key    string
	logger *zap.Logger
}

// NewPatientStore creates a PatientStore over the given backend. An empty
// key selects DefaultPatientsKey.
func NewPatientStore(kv KV, key string, logger *zap.Logger) *PatientStore {
	if key == "" {
		key = DefaultPatientsKey
	}
	return &PatientStore{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// GetAll loads the full collection. An absent key yields an empty slice.
func (s *PatientStore) GetAll(ctx context.Context) ([]model.Patient, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to read patient collection", zap.Error(err))
		return nil, fmt.Errorf("failed to read patient collection: %w", err)
	}
	if !found {
		return []model.Patient{}, nil
	}

	var patients []model.Patient
	if err := json.Unmarshal(data, &patients); err != nil {
		s.logger.Error("stored patient collection is corrupt", zap.Error(err))
		return nil, fmt.Errorf("stored patient collection is corrupt: %w", err)
	}
	return patients, nil
}

// SaveAll atomically replaces the full collection.
func (s *PatientStore) SaveAll(ctx context.Context, patients []model.Patient) error {
	data, err := json.Marshal(patients)
	if err != nil {
		return fmt.Errorf("failed to encode patient collection: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("failed to write patient collection", zap.Error(err))
		return fmt.Errorf("failed to write patient collection: %w", err)
	}

	s.logger.Debug("patient collection saved", zap.Int("count", len(patients)))
	return nil
}

// Add appends one patient to the collection.
func (s *PatientStore) Add(ctx context.Context, patient model.Patient) error {
	patients, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	return s.SaveAll(ctx, append(patients, patient))
}

// Update replaces the patient with the same ID. An unknown ID is a silent
// no-op.
func (s *PatientStore) Update(ctx context.Context, patient model.Patient) error {
	patients, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range patients {
		if patients[i].ID == patient.ID {
			patients[i] = patient
			return s.SaveAll(ctx, patients)
		}
	}

	s.logger.Warn("update skipped, patient not found", zap.String("patient_id", patient.ID))
	return nil
}

// FindByID returns the patient with the given ID, or found=false.
func (s *PatientStore) FindByID(ctx context.Context, id string) (model.Patient, bool, error) {
	patients, err := s.GetAll(ctx)
	if err != nil {
		return model.Patient{}, false, err
	}
	for _, p := range patients {
		if p.ID == id {
			return p, true, nil
		}
	}
	return model.Patient{}, false, nil
}

// Delete removes the patient with the given ID. An unknown ID is a silent
// no-op.
func (s *PatientStore) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany removes every patient whose ID appears in ids. Unknown IDs
// are ignored.
func (s *PatientStore) DeleteMany(ctx context.Context, ids []string) error {
	patients, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	kept := patients[:0]
	for _, p := range patients {
		if _, ok := doomed[p.ID]; !ok {
			kept = append(kept, p)
		}
	}

	if len(kept) == len(patients) {
		return nil
	}

	if err := s.SaveAll(ctx, kept); err != nil {
		return err
	}

	s.logger.Info("patients deleted",
		zap.Int("requested", len(ids)),
		zap.Int("removed", len(patients)-len(kept)),
	)
	return nil
}
