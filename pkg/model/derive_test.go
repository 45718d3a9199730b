package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt_LastBirthdayRule(t *testing.T) {
	birthday := NewDate(2020, time.March, 15)

	tests := []struct {
		name  string
		today Date
		want  int
	}{
		{"day before birthday", NewDate(2024, time.March, 14), 3},
		{"on birthday", NewDate(2024, time.March, 15), 4},
		{"day after birthday", NewDate(2024, time.March, 16), 4},
		{"earlier month", NewDate(2024, time.January, 1), 3},
		{"later month", NewDate(2024, time.December, 31), 4},
		{"same day as birth", NewDate(2020, time.March, 15), 0},
		{"reference before birth clamps to zero", NewDate(2019, time.June, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(birthday, tt.today))
		})
	}
}

func TestAgeAt_ZeroBirthday(t *testing.T) {
	assert.Equal(t, 0, AgeAt(Date{}, NewDate(2024, time.March, 15)))
}

func TestNextFollowUpDate_MonthEndClamping(t *testing.T) {
	tests := []struct {
		name   string
		last   Date
		months int
		want   Date
	}{
		{"plain month advance", NewDate(2024, time.March, 15), 3, NewDate(2024, time.June, 15)},
		{"jan 31 into leap february", NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)},
		{"jan 31 into non-leap february", NewDate(2023, time.January, 31), 1, NewDate(2023, time.February, 28)},
		{"may 31 into june", NewDate(2024, time.May, 31), 1, NewDate(2024, time.June, 30)},
		{"year rollover", NewDate(2024, time.November, 30), 3, NewDate(2025, time.February, 28)},
		{"twelve months", NewDate(2024, time.February, 29), 12, NewDate(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextFollowUpDate(tt.last, tt.months))
		})
	}
}

func TestNextFollowUpDate_InvalidInputs(t *testing.T) {
	assert.True(t, NextFollowUpDate(Date{}, 3).IsZero())
	assert.True(t, NextFollowUpDate(NewDate(2024, time.January, 1), 0).IsZero())
	assert.True(t, NextFollowUpDate(NewDate(2024, time.January, 1), -2).IsZero())
}

func TestDaysUntil(t *testing.T) {
	today := NewDate(2024, time.June, 10)

	assert.Equal(t, 0, DaysUntil(today, today))
	assert.Equal(t, 5, DaysUntil(NewDate(2024, time.June, 15), today))
	assert.Equal(t, -3, DaysUntil(NewDate(2024, time.June, 7), today))
	assert.Equal(t, 21, DaysUntil(NewDate(2024, time.July, 1), today))
}
