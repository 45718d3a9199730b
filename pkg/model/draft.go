package model

import "strings"

// MedicationNameKind tags the state of a medication name in a draft.
type MedicationNameKind string

const (
	// MedicationNameUnset marks a regimen row whose name was never chosen.
	// Such rows are dropped during reconciliation instead of being stored.
	MedicationNameUnset MedicationNameKind = "unset"
	// MedicationNameKnown is a selection from the CommonMedications catalog.
	MedicationNameKnown MedicationNameKind = "known"
	// MedicationNameCustom is a free-text medication name.
	MedicationNameCustom MedicationNameKind = "custom"
)

// MedicationName is a tagged medication-name value. It replaces the
// whitespace sentinel the record format historically used for "custom name
// pending".
type MedicationName struct {
	Kind MedicationNameKind `json:"kind"`
	Text string             `json:"text,omitempty"`
}

// KnownMedication returns a catalog selection.
func KnownMedication(name string) MedicationName {
	return MedicationName{Kind: MedicationNameKnown, Text: name}
}

// CustomMedication returns a free-text medication name.
func CustomMedication(text string) MedicationName {
	return MedicationName{Kind: MedicationNameCustom, Text: text}
}

// Resolve returns the stored name and whether the draft row carries one at
// all. Unset rows and blank custom text resolve to nothing.
func (n MedicationName) Resolve() (string, bool) {
	switch n.Kind {
	case MedicationNameKnown, MedicationNameCustom:
		name := strings.TrimSpace(n.Text)
		return name, name != ""
	default:
		return "", false
	}
}

// MedicationDraft is one regimen row as submitted by the form.
type MedicationDraft struct {
	Name      MedicationName `json:"name"`
	Usage     string         `json:"usage"`
	Dosage    string         `json:"dosage"`
	StartDate Date           `json:"startDate"`
	EndDate   *Date          `json:"endDate,omitempty"`
}

// PatientDraft is a form submission: everything the clinician can enter,
// before derivation and normalization. Age and the next follow-up date are
// deliberately absent; they are always recomputed.
type PatientDraft struct {
	Name              string            `json:"name"`
	Gender            Gender            `json:"gender"`
	Birthday          Date              `json:"birthday"`
	Allergies         string            `json:"allergies"`
	FamilyHistory     string            `json:"familyHistory"`
	IDCard            string            `json:"idCard"`
	Phone             string            `json:"phone"`
	ClinicalSummary   ClinicalSummary   `json:"clinicalSummary"`
	Diagnosis         string            `json:"diagnosis"`
	DiagnosisDate     Date              `json:"diagnosisDate"`
	Medications       []MedicationDraft `json:"medications"`
	FollowUpItems     []string          `json:"followUpItems"`
	OtherFollowUpText string            `json:"otherFollowUpText"`
	IntervalMonths    int               `json:"intervalMonths"`
	LastFollowUpDate  Date              `json:"lastFollowUpDate"`
}
