package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jefflong/lzryek-followup/internal/pdf"
	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReportService_PatientReport(t *testing.T) {
	st := store.NewPatientStore(store.NewMemKV(), store.DefaultPatientsKey, zap.NewNop())
	svc := NewReportService(st, pdf.NewPDFGenerator(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, st.SaveAll(ctx, []model.Patient{{ID: "p1", Name: "Li Wei", Gender: model.GenderMale}}))

	data, filename, err := svc.PatientReport(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.True(t, strings.HasPrefix(filename, "Patient_Report_Li Wei_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
}

func TestReportService_PatientReportNotFound(t *testing.T) {
	st := store.NewPatientStore(store.NewMemKV(), store.DefaultPatientsKey, zap.NewNop())
	svc := NewReportService(st, pdf.NewPDFGenerator(zap.NewNop()), zap.NewNop())

	_, _, err := svc.PatientReport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
