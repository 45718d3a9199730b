package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// TotalScore computes the 0-100 quality-of-life total from the five
// sub-scores. The side-effect score is inverted: a low side-effect burden
// raises the total.
func TotalScore(scores model.AssessmentScores) int {
	sum := scores.Emotional + scores.Social + scores.Seizure +
		(10 - scores.SideEffect) + scores.Overall
	return int(math.Round(float64(sum) / 50 * 100))
}

// AssessmentService records quality-of-life scoring events.
type AssessmentService struct {
	store  *store.PatientStore
	logger *zap.Logger
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(store *store.PatientStore, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{
		store:  store,
		logger: logger,
	}
}

// Record validates the sub-scores, recomputes the total and appends the
// assessment to the patient's history. The submitted total, if any, is
// never trusted.
func (s *AssessmentService) Record(ctx context.Context, patientID string, scores model.AssessmentScores, notes string) (model.AssessmentRecord, error) {
	if err := validateScores(scores); err != nil {
		return model.AssessmentRecord{}, err
	}

	patient, ok, err := s.store.FindByID(ctx, patientID)
	if err != nil {
		return model.AssessmentRecord{}, err
	}
	if !ok {
		return model.AssessmentRecord{}, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}

	record := model.AssessmentRecord{
		ID:         uuid.New().String(),
		Date:       model.DateOf(time.Now()),
		Scores:     scores,
		TotalScore: TotalScore(scores),
		Notes:      notes,
	}

	patient.AssessmentHistory = append(patient.AssessmentHistory, record)
	if err := s.store.Update(ctx, patient); err != nil {
		return model.AssessmentRecord{}, err
	}

	s.logger.Info("assessment recorded",
		zap.String("patient_id", patientID),
		zap.String("assessment_id", record.ID),
		zap.Int("total_score", record.TotalScore),
	)
	return record, nil
}

func validateScores(scores model.AssessmentScores) error {
	fields := map[string]int{
		"emotional":  scores.Emotional,
		"social":     scores.Social,
		"seizure":    scores.Seizure,
		"sideEffect": scores.SideEffect,
		"overall":    scores.Overall,
	}
	for name, v := range fields {
		if v < 0 || v > 10 {
			return fmt.Errorf("%w: %s score must be between 0 and 10", ErrValidation, name)
		}
	}
	return nil
}
