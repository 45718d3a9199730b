package model

import "time"

// AgeAt computes whole years elapsed between birthday and today using the
// last-birthday rule: the count is decremented when today's month/day
// precedes the birth month/day. Negative results clamp to zero.
func AgeAt(birthday, today Date) int {
	if birthday.IsZero() {
		return 0
	}
	years := today.Year() - birthday.Year()
	if today.Month() < birthday.Month() ||
		(today.Month() == birthday.Month() && today.Day() < birthday.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// NextFollowUpDate advances last by months calendar months. When the source
// day does not exist in the target month the result clamps to the last
// valid day (Jan 31 + 1 month -> Feb 29 in a leap year).
func NextFollowUpDate(last Date, months int) Date {
	if last.IsZero() || months <= 0 {
		return Date{}
	}
	year, month, day := last.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// DaysUntil returns the signed number of calendar days from today to due.
// Negative means due is in the past.
func DaysUntil(due, today Date) int {
	return int(due.Time.Sub(today.Time) / (24 * time.Hour))
}
