package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// GenderCount is the cohort gender split.
type GenderCount struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// AgeGroups buckets the cohort by pediatric age band.
type AgeGroups struct {
	Infant     int `json:"infant"`     // 0-1
	Toddler    int `json:"toddler"`    // 1-3
	Preschool  int `json:"preschool"`  // 3-6
	School     int `json:"school"`     // 6-12
	Adolescent int `json:"adolescent"` // 12+
}

// MedicationCount is one entry of the medication usage ranking.
type MedicationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CohortStats summarizes a patient set for the overview panel.
type CohortStats struct {
	Total          int               `json:"total"`
	Gender         GenderCount       `json:"gender"`
	AgeGroups      AgeGroups         `json:"ageGroups"`
	TopMedications []MedicationCount `json:"topMedications"`
}

// Summary is the dashboard payload: cohort stats plus the reminder load.
type Summary struct {
	CohortStats
	DueSoon int `json:"dueSoon"`
	Overdue int `json:"overdue"`
}

// ComputeCohortStats derives cohort statistics from a patient set.
// Medication usage is counted by the first whitespace token of each name,
// so entries that carry a dosage suffix count under one label. At most
// the top five medications are reported, most used first, ties broken
// alphabetically so the ranking is deterministic.
func ComputeCohortStats(patients []model.Patient) CohortStats {
	stats := CohortStats{Total: len(patients)}
	usage := make(map[string]int)

	for _, p := range patients {
		if p.Gender == model.GenderMale {
			stats.Gender.Male++
		} else {
			stats.Gender.Female++
		}

		switch {
		case p.Age <= 1:
			stats.AgeGroups.Infant++
		case p.Age <= 3:
			stats.AgeGroups.Toddler++
		case p.Age <= 6:
			stats.AgeGroups.Preschool++
		case p.Age <= 12:
			stats.AgeGroups.School++
		default:
			stats.AgeGroups.Adolescent++
		}

		for _, m := range p.Medications {
			name := strings.SplitN(strings.TrimSpace(m.Name), " ", 2)[0]
			if name != "" {
				usage[name]++
			}
		}
	}

	ranked := make([]MedicationCount, 0, len(usage))
	for name, count := range usage {
		ranked = append(ranked, MedicationCount{Name: name, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopMedications = ranked

	return stats
}

// DashboardService assembles the overview payload.
type DashboardService struct {
	store  *store.PatientStore
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store *store.PatientStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger,
	}
}

// Summary returns cohort statistics and the current reminder load.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	patients, err := s.store.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{CohortStats: ComputeCohortStats(patients)}
	for _, r := range ComputeReminders(patients, model.DateOf(time.Now())) {
		if r.IsOverdue {
			summary.Overdue++
		} else {
			summary.DueSoon++
		}
	}

	s.logger.Debug("dashboard summary computed",
		zap.Int("patients", summary.Total),
		zap.Int("due_soon", summary.DueSoon),
		zap.Int("overdue", summary.Overdue),
	)

	return summary, nil
}
