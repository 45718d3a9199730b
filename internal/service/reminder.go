package service

import (
	"context"
	"sort"
	"time"

	"github.com/jefflong/lzryek-followup/internal/store"
	"github.com/jefflong/lzryek-followup/pkg/model"
	"go.uber.org/zap"
)

// ReminderWindowDays is how far ahead the reminder list looks. There is no
// lower bound: a patient overdue by any amount always appears.
const ReminderWindowDays = 14

// ComputeReminders derives the follow-up worklist from the patient
// collection. Patients without a scheduled next date are skipped; the rest
// are included when due within the window, sorted most-overdue first with
// ties kept in input order.
func ComputeReminders(patients []model.Patient, today model.Date) []model.FollowUpReminder {
	reminders := make([]model.FollowUpReminder, 0, len(patients))
	for _, p := range patients {
		due := p.FollowUpConfig.NextFollowUpDate
		if due.IsZero() {
			continue
		}
		days := model.DaysUntil(due, today)
		if days > ReminderWindowDays {
			continue
		}
		reminders = append(reminders, model.FollowUpReminder{
			PatientID:     p.ID,
			PatientName:   p.Name,
			DaysRemaining: days,
			IsOverdue:     days < 0,
			DueDate:       due,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DaysRemaining < reminders[j].DaysRemaining
	})
	return reminders
}

// ReminderService exposes the reminder worklist over the record store.
type ReminderService struct {
	store  *store.PatientStore
	logger *zap.Logger
}

// NewReminderService creates a new ReminderService.
func NewReminderService(store *store.PatientStore, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		store:  store,
		logger: logger,
	}
}

// Upcoming returns today's reminder list.
func (s *ReminderService) Upcoming(ctx context.Context) ([]model.FollowUpReminder, error) {
	patients, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	reminders := ComputeReminders(patients, model.DateOf(time.Now()))
	s.logger.Debug("reminders computed",
		zap.Int("patients", len(patients)),
		zap.Int("reminders", len(reminders)),
	)
	return reminders, nil
}
