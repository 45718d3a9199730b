package model

import "time"

// Gender represents a patient's gender
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ClinicalSummary holds the structured clinical findings for a patient.
// The same shape is embedded in every visit snapshot.
type ClinicalSummary struct {
	Syndrome    string `json:"syndrome"`
	SeizureType string `json:"seizureType"`
	EEG         string `json:"eeg"`
	MRI         string `json:"mri"`
	Genetic     string `json:"genetic"`
	Biochemical string `json:"biochemical"`
	Other       string `json:"other"`
}

// Medication is one entry of a patient's anti-seizure regimen. A medication
// without an end date is active; presence of the end date is the only
// discontinuation signal.
type Medication struct {
	Name      string `json:"name"`
	Usage     string `json:"usage"`
	Dosage    string `json:"dosage"`
	StartDate Date   `json:"startDate"`
	EndDate   *Date  `json:"endDate,omitempty"`
}

// Active reports whether the medication is part of the current regimen.
func (m Medication) Active() bool {
	return m.EndDate == nil || m.EndDate.IsZero()
}

// FollowUpConfig is the current follow-up scheduling state. NextFollowUpDate
// is derived from LastFollowUpDate and IntervalMonths and is never set
// directly.
type FollowUpConfig struct {
	Items            []string `json:"items"`
	IntervalMonths   int      `json:"intervalMonths"`
	LastFollowUpDate Date     `json:"lastFollowUpDate"`
	NextFollowUpDate Date     `json:"nextFollowUpDate"`
}

// Clone returns an independent copy of the config.
func (c FollowUpConfig) Clone() FollowUpConfig {
	out := c
	out.Items = append([]string(nil), c.Items...)
	return out
}

// VisitRecord is the immutable snapshot committed at the end of a clinical
// visit. Once appended to a patient's history its fields are never edited;
// corrections are made by appending another visit.
type VisitRecord struct {
	ID              string          `json:"id"`
	Date            Date            `json:"date"`
	ClinicalSummary ClinicalSummary `json:"clinicalSummary"`
	Medications     []Medication    `json:"medications"`
	FollowUpConfig  FollowUpConfig  `json:"followUpConfig"`
}

// AssessmentScores are the five quality-of-life sub-scores, each in [0,10].
type AssessmentScores struct {
	Emotional  int `json:"emotional"`
	Social     int `json:"social"`
	Seizure    int `json:"seizure"`
	SideEffect int `json:"sideEffect"`
	Overall    int `json:"overall"`
}

// AssessmentRecord is one quality-of-life scoring event. TotalScore is
// recomputed from the sub-scores at save time, never taken from input.
type AssessmentRecord struct {
	ID         string           `json:"id"`
	Date       Date             `json:"date"`
	Scores     AssessmentScores `json:"scores"`
	TotalScore int              `json:"totalScore"`
	Notes      string           `json:"notes"`
}

// Patient is the root longitudinal record for one child.
type Patient struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Gender            Gender             `json:"gender"`
	Birthday          Date               `json:"birthday"`
	Age               int                `json:"age"`
	Allergies         string             `json:"allergies"`
	FamilyHistory     string             `json:"familyHistory"`
	IDCard            string             `json:"idCard"`
	Phone             string             `json:"phone"`
	ClinicalSummary   ClinicalSummary    `json:"clinicalSummary"`
	Diagnosis         string             `json:"diagnosis"`
	DiagnosisDate     Date               `json:"diagnosisDate"`
	Medications       []Medication       `json:"medications"`
	FollowUpConfig    FollowUpConfig     `json:"followUpConfig"`
	VisitHistory      []VisitRecord      `json:"visitHistory"`
	AssessmentHistory []AssessmentRecord `json:"assessmentHistory,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// Identity is the key used for import deduplication: the national ID card
// number when present, the opaque record ID otherwise.
func (p Patient) Identity() string {
	if p.IDCard != "" {
		return p.IDCard
	}
	return p.ID
}

// ActiveMedications returns the medications without an end date.
func (p Patient) ActiveMedications() []Medication {
	var active []Medication
	for _, m := range p.Medications {
		if m.Active() {
			active = append(active, m)
		}
	}
	return active
}

// Clone returns a deep copy of the patient. Visit snapshots are value
// copies, so mutating the clone never reaches into history shared with the
// original.
func (p Patient) Clone() Patient {
	out := p
	out.Medications = cloneMedications(p.Medications)
	out.FollowUpConfig = p.FollowUpConfig.Clone()
	if p.VisitHistory != nil {
		out.VisitHistory = make([]VisitRecord, len(p.VisitHistory))
		for i, v := range p.VisitHistory {
			v.Medications = cloneMedications(v.Medications)
			v.FollowUpConfig = v.FollowUpConfig.Clone()
			out.VisitHistory[i] = v
		}
	}
	out.AssessmentHistory = append([]AssessmentRecord(nil), p.AssessmentHistory...)
	return out
}

func cloneMedications(meds []Medication) []Medication {
	if meds == nil {
		return nil
	}
	out := make([]Medication, len(meds))
	for i, m := range meds {
		if m.EndDate != nil {
			end := *m.EndDate
			m.EndDate = &end
		}
		out[i] = m
	}
	return out
}

// FollowUpReminder is a derived, non-persisted projection flagging a
// patient as due or overdue for follow-up.
type FollowUpReminder struct {
	PatientID     string `json:"patientId"`
	PatientName   string `json:"patientName"`
	DaysRemaining int    `json:"daysRemaining"`
	IsOverdue     bool   `json:"isOverdue"`
	DueDate       Date   `json:"dueDate"`
}
