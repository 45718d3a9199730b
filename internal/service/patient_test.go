package service

import (
	"context"
	"testing"
	"time"

	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validDraft() model.PatientDraft {
	return model.PatientDraft{
		Name:     "Li Wei",
		Gender:   model.GenderMale,
		Birthday: model.NewDate(2019, time.June, 12),
		ClinicalSummary: model.ClinicalSummary{
			Syndrome:    "Childhood absence epilepsy",
			SeizureType: "Absence",
			EEG:         "3Hz spike-and-wave",
		},
		Diagnosis: "Epilepsy",
		Medications: []model.MedicationDraft{
			{
				Name:      model.KnownMedication("Valproate"),
				Usage:     "oral",
				Dosage:    "250mg bid",
				StartDate: model.NewDate(2024, time.January, 10),
			},
		},
		FollowUpItems:    []string{"EEG", "Blood Level"},
		IntervalMonths:   3,
		LastFollowUpDate: model.NewDate(2024, time.March, 1),
	}
}

func newTestService(t *testing.T) *PatientService {
	t.Helper()
	st := store.NewPatientStore(store.NewMemKV(), store.DefaultPatientsKey, zap.NewNop())
	return NewPatientService(st, zap.NewNop())
}

func TestReconcile_Create(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

	patient, outcome, err := Reconcile(nil, validDraft(), false, now)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	assert.NotEmpty(t, patient.ID)
	assert.Equal(t, now, patient.CreatedAt)
	assert.Equal(t, 5, patient.Age)
	assert.Equal(t, model.NewDate(2024, time.June, 1), patient.FollowUpConfig.NextFollowUpDate)

	require.Len(t, patient.VisitHistory, 1)
	visit := patient.VisitHistory[0]
	assert.NotEmpty(t, visit.ID)
	assert.Equal(t, model.NewDate(2024, time.March, 1), visit.Date)
	assert.Equal(t, patient.ClinicalSummary, visit.ClinicalSummary)
	assert.Equal(t, patient.FollowUpConfig, visit.FollowUpConfig)
}

func TestReconcile_CreateVisitDateDefaultsToToday(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	draft := validDraft()
	draft.LastFollowUpDate = model.Date{}

	patient, _, err := Reconcile(nil, draft, false, now)
	require.NoError(t, err)

	require.Len(t, patient.VisitHistory, 1)
	assert.Equal(t, model.NewDate(2024, time.July, 1), patient.VisitHistory[0].Date)
	assert.True(t, patient.FollowUpConfig.NextFollowUpDate.IsZero())
}

func TestReconcile_ProfileUpdateKeepsHistory(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	existing, _, err := Reconcile(nil, validDraft(), false, now)
	require.NoError(t, err)

	draft := validDraft()
	draft.Allergies = "Penicillin"
	updated, outcome, err := Reconcile(&existing, draft, false, now.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, OutcomeProfileUpdated, outcome)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Penicillin", updated.Allergies)
	assert.Len(t, updated.VisitHistory, 1, "profile edits must not grow the visit history")
}

func TestReconcile_NewVisitAppendsSnapshot(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	existing, _, err := Reconcile(nil, validDraft(), false, now)
	require.NoError(t, err)

	draft := validDraft()
	draft.LastFollowUpDate = model.NewDate(2024, time.June, 28)
	updated, outcome, err := Reconcile(&existing, draft, true, now)
	require.NoError(t, err)

	assert.Equal(t, OutcomeVisitAdded, outcome)
	require.Len(t, updated.VisitHistory, 2)
	assert.Equal(t, model.NewDate(2024, time.June, 28), updated.VisitHistory[1].Date)

	// The first snapshot is untouched by the new visit.
	assert.Equal(t, existing.VisitHistory[0], updated.VisitHistory[0])
}

func TestReconcile_SnapshotIsolatedFromCurrentState(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	patient, _, err := Reconcile(nil, validDraft(), false, now)
	require.NoError(t, err)

	patient.Medications[0].Dosage = "500mg bid"
	patient.FollowUpConfig.Items[0] = "MRI"

	assert.Equal(t, "250mg bid", patient.VisitHistory[0].Medications[0].Dosage)
	assert.Equal(t, "EEG", patient.VisitHistory[0].FollowUpConfig.Items[0])
}

func TestReconcile_DropsUnresolvedMedications(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	draft := validDraft()
	draft.Medications = append(draft.Medications,
		model.MedicationDraft{Name: model.MedicationName{Kind: model.MedicationNameUnset}},
		model.MedicationDraft{Name: model.CustomMedication("   ")},
		model.MedicationDraft{Name: model.CustomMedication("  Sulthiame ")},
	)

	patient, _, err := Reconcile(nil, draft, false, now)
	require.NoError(t, err)

	require.Len(t, patient.Medications, 2)
	assert.Equal(t, "Valproate", patient.Medications[0].Name)
	assert.Equal(t, "Sulthiame", patient.Medications[1].Name)
}

func TestReconcile_NormalizesOtherItem(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		items     []string
		otherText string
		want      []string
	}{
		{
			name:      "other replaced by free text",
			items:     []string{"EEG", model.FollowUpItemOther},
			otherText: " Sleep study ",
			want:      []string{"EEG", "Sleep study"},
		},
		{
			name:  "other without text dropped",
			items: []string{"EEG", model.FollowUpItemOther},
			want:  []string{"EEG"},
		},
		{
			name:      "free text ignored without other",
			items:     []string{"EEG"},
			otherText: "Sleep study",
			want:      []string{"EEG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.FollowUpItems = tt.items
			draft.OtherFollowUpText = tt.otherText

			patient, _, err := Reconcile(nil, draft, false, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, patient.FollowUpConfig.Items)
		})
	}
}

func TestReconcile_Validation(t *testing.T) {
	now := time.Now()
	end := model.NewDate(2024, time.January, 1)

	tests := []struct {
		name   string
		mutate func(*model.PatientDraft)
	}{
		{"missing name", func(d *model.PatientDraft) { d.Name = "  " }},
		{"missing birthday", func(d *model.PatientDraft) { d.Birthday = model.Date{} }},
		{"invalid gender", func(d *model.PatientDraft) { d.Gender = "OTHER" }},
		{"missing diagnosis", func(d *model.PatientDraft) { d.Diagnosis = "" }},
		{"zero interval", func(d *model.PatientDraft) { d.IntervalMonths = 0 }},
		{"end before start", func(d *model.PatientDraft) { d.Medications[0].EndDate = &end }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			_, _, err := Reconcile(nil, draft, false, now)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPatientService_SaveAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, outcome, err := svc.Save(ctx, "", validDraft(), false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Len(t, got.VisitHistory, 1)
}

func TestPatientService_SaveUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, outcome, err := svc.Save(context.Background(), "missing", validDraft(), false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
}

func TestPatientService_GetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatientService_List(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Save(ctx, "", validDraft(), false)
	require.NoError(t, err)

	second := validDraft()
	second.Name = "Zhang Min"
	second.Gender = model.GenderFemale
	second.Medications = []model.MedicationDraft{{
		Name:      model.KnownMedication("Levetiracetam"),
		StartDate: model.NewDate(2024, time.February, 1),
	}}
	_, _, err = svc.Save(ctx, "", second, false)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query ListQuery
		want  int
	}{
		{"no filter", ListQuery{}, 2},
		{"by name", ListQuery{Q: "li w"}, 1},
		{"by medication", ListQuery{Q: "levetiracetam"}, 1},
		{"by diagnosis", ListQuery{Q: "epilepsy"}, 2},
		{"no match", ListQuery{Q: "nobody"}, 0},
		{"created range excludes all", ListQuery{CreatedTo: model.NewDate(2000, time.January, 1)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestPatientService_DeleteMany(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.Save(ctx, "", validDraft(), false)
	require.NoError(t, err)

	err = svc.DeleteMany(ctx, nil)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.DeleteMany(ctx, []string{created.ID, "missing"}))

	remaining, err := svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
