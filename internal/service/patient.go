package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// SaveOutcome reports what a reconciliation did, so the caller can phrase
// its feedback without re-deriving the decision.
type SaveOutcome string

const (
	OutcomeCreated        SaveOutcome = "created"
	OutcomeProfileUpdated SaveOutcome = "profile_updated"
	OutcomeVisitAdded     SaveOutcome = "visit_added"
	OutcomeNotFound       SaveOutcome = "not_found"
)

// PatientService handles the patient record lifecycle.
type PatientService struct {
	store  *store.PatientStore
	logger *zap.Logger
}

// NewPatientService creates a new PatientService.
func NewPatientService(store *store.PatientStore, logger *zap.Logger) *PatientService {
	return &PatientService{
		store:  store,
		logger: logger,
	}
}

// Reconcile turns a form submission into a patient record.
//
// With no existing patient it creates one, seeding the visit history with a
// single snapshot of the submitted state. With an existing patient and
// newVisit=false it replaces the current-state fields and leaves the visit
// history alone. With newVisit=true it additionally appends one immutable
// visit snapshot. ID, CreatedAt, VisitHistory and AssessmentHistory are
// never rewritten from the form.
func Reconcile(existing *model.Patient, draft model.PatientDraft, newVisit bool, now time.Time) (model.Patient, SaveOutcome, error) {
	if err := validateDraft(draft); err != nil {
		return model.Patient{}, "", err
	}

	today := model.DateOf(now)
	medications := resolveMedications(draft.Medications)
	followUp := model.FollowUpConfig{
		Items:            normalizeFollowUpItems(draft.FollowUpItems, draft.OtherFollowUpText),
		IntervalMonths:   draft.IntervalMonths,
		LastFollowUpDate: draft.LastFollowUpDate,
		NextFollowUpDate: model.NextFollowUpDate(draft.LastFollowUpDate, draft.IntervalMonths),
	}

	var patient model.Patient
	var outcome SaveOutcome
	if existing == nil {
		patient = model.Patient{
			ID:        uuid.New().String(),
			CreatedAt: now,
		}
		outcome = OutcomeCreated
	} else {
		patient = existing.Clone()
		outcome = OutcomeProfileUpdated
	}

	patient.Name = draft.Name
	patient.Gender = draft.Gender
	patient.Birthday = draft.Birthday
	patient.Age = model.AgeAt(draft.Birthday, today)
	patient.Allergies = draft.Allergies
	patient.FamilyHistory = draft.FamilyHistory
	patient.IDCard = draft.IDCard
	patient.Phone = draft.Phone
	patient.ClinicalSummary = draft.ClinicalSummary
	patient.Diagnosis = draft.Diagnosis
	patient.DiagnosisDate = draft.DiagnosisDate
	patient.Medications = medications
	patient.FollowUpConfig = followUp

	if existing == nil || newVisit {
		visitDate := followUp.LastFollowUpDate
		if visitDate.IsZero() {
			visitDate = today
		}
		patient.VisitHistory = append(patient.VisitHistory, model.VisitRecord{
			ID:              uuid.New().String(),
			Date:            visitDate,
			ClinicalSummary: draft.ClinicalSummary,
			Medications:     cloneForSnapshot(medications),
			FollowUpConfig:  followUp.Clone(),
		})
		if existing != nil {
			outcome = OutcomeVisitAdded
		}
	}

	return patient, outcome, nil
}

// validateDraft enforces the required fields and the regimen date
// invariant. Nothing is persisted when it fails.
func validateDraft(draft model.PatientDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if draft.Birthday.IsZero() {
		return fmt.Errorf("%w: birthday is required", ErrValidation)
	}
	if !draft.Gender.Valid() {
		return fmt.Errorf("%w: gender must be MALE or FEMALE", ErrValidation)
	}
	if strings.TrimSpace(draft.Diagnosis) == "" {
		return fmt.Errorf("%w: diagnosis is required", ErrValidation)
	}
	if draft.IntervalMonths < 1 {
		return fmt.Errorf("%w: follow-up interval must be at least one month", ErrValidation)
	}
	for _, med := range draft.Medications {
		name, ok := med.Name.Resolve()
		if !ok {
			continue
		}
		if med.EndDate != nil && !med.EndDate.IsZero() && med.EndDate.Before(med.StartDate.Time) {
			return fmt.Errorf("%w: medication %s end date precedes its start date", ErrValidation, name)
		}
	}
	return nil
}

// normalizeFollowUpItems strips the designated "other" slot from the
// selection and appends the free text supplied for it, if any.
func normalizeFollowUpItems(items []string, otherText string) []string {
	normalized := make([]string, 0, len(items)+1)
	hadOther := false
	for _, item := range items {
		if item == model.FollowUpItemOther {
			hadOther = true
			continue
		}
		normalized = append(normalized, item)
	}
	if hadOther {
		if text := strings.TrimSpace(otherText); text != "" {
			normalized = append(normalized, text)
		}
	}
	return normalized
}

// resolveMedications keeps only rows whose name resolved to something and
// flattens the tagged names into the stored shape.
func resolveMedications(drafts []model.MedicationDraft) []model.Medication {
	meds := make([]model.Medication, 0, len(drafts))
	for _, d := range drafts {
		name, ok := d.Name.Resolve()
		if !ok {
			continue
		}
		med := model.Medication{
			Name:      name,
			Usage:     d.Usage,
			Dosage:    d.Dosage,
			StartDate: d.StartDate,
		}
		if d.EndDate != nil && !d.EndDate.IsZero() {
			end := *d.EndDate
			med.EndDate = &end
		}
		meds = append(meds, med)
	}
	return meds
}

func cloneForSnapshot(meds []model.Medication) []model.Medication {
	out := make([]model.Medication, len(meds))
	for i, m := range meds {
		if m.EndDate != nil {
			end := *m.EndDate
			m.EndDate = &end
		}
		out[i] = m
	}
	return out
}

// Save reconciles and persists a submission. existingID selects the
// patient being edited; empty means create. Editing an unknown ID is
// reported as OutcomeNotFound with no state change.
func (s *PatientService) Save(ctx context.Context, existingID string, draft model.PatientDraft, newVisit bool) (model.Patient, SaveOutcome, error) {
	var existing *model.Patient
	if existingID != "" {
		found, ok, err := s.store.FindByID(ctx, existingID)
		if err != nil {
			return model.Patient{}, "", err
		}
		if !ok {
			s.logger.Warn("save skipped, patient not found", zap.String("patient_id", existingID))
			return model.Patient{}, OutcomeNotFound, nil
		}
		existing = &found
	}

	patient, outcome, err := Reconcile(existing, draft, newVisit, time.Now())
	if err != nil {
		return model.Patient{}, "", err
	}

	if outcome == OutcomeCreated {
		err = s.store.Add(ctx, patient)
	} else {
		err = s.store.Update(ctx, patient)
	}
	if err != nil {
		return model.Patient{}, "", err
	}

	s.logger.Info("patient saved",
		zap.String("patient_id", patient.ID),
		zap.String("outcome", string(outcome)),
		zap.Int("visit_count", len(patient.VisitHistory)),
	)
	return patient, outcome, nil
}

// Get returns one patient by ID.
func (s *PatientService) Get(ctx context.Context, id string) (model.Patient, error) {
	patient, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}
	if !ok {
		return model.Patient{}, fmt.Errorf("%w: patient %s", ErrNotFound, id)
	}
	return patient, nil
}

// ListQuery filters the patient list. Q matches name, ID card, phone,
// diagnosis, syndrome and medication names case-insensitively; the date
// range applies to the record creation date.
type ListQuery struct {
	Q           string
	CreatedFrom model.Date
	CreatedTo   model.Date
}

// List returns the patients matching the query, in storage order.
func (s *PatientService) List(ctx context.Context, query ListQuery) ([]model.Patient, error) {
	patients, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Patient, 0, len(patients))
	for _, p := range patients {
		if matchesQuery(p, query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func matchesQuery(p model.Patient, query ListQuery) bool {
	if query.Q != "" {
		needle := strings.ToLower(query.Q)
		hit := strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(p.IDCard, query.Q) ||
			strings.Contains(p.Phone, query.Q) ||
			strings.Contains(strings.ToLower(p.Diagnosis), needle) ||
			strings.Contains(strings.ToLower(p.ClinicalSummary.Syndrome), needle)
		if !hit {
			for _, m := range p.Medications {
				if strings.Contains(strings.ToLower(m.Name), needle) {
					hit = true
					break
				}
			}
		}
		if !hit {
			return false
		}
	}

	created := model.DateOf(p.CreatedAt)
	if !query.CreatedFrom.IsZero() && created.Before(query.CreatedFrom.Time) {
		return false
	}
	if !query.CreatedTo.IsZero() && created.After(query.CreatedTo.Time) {
		return false
	}
	return true
}

// Delete removes one patient. Unknown IDs are silent no-ops.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("patient deleted", zap.String("patient_id", id))
	return nil
}

// DeleteMany removes a batch of patients. Unknown IDs are ignored.
func (s *PatientService) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no patient IDs given", ErrValidation)
	}
	return s.store.DeleteMany(ctx, ids)
}
