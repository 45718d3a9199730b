package model

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_AgeDerivation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("age is never negative and grows by one per birthday year", prop.ForAll(
		func(birthYear, refYear int, month, day int) bool {
			birthday := NewDate(birthYear, time.Month(month), day)
			today := NewDate(refYear, time.Month(month), day)

			age := AgeAt(birthday, today)
			if age < 0 {
				return false
			}
			// On the birthday itself the last-birthday rule counts the full year.
			if refYear >= birthYear && age != refYear-birthYear {
				return false
			}
			// One year later the age advances by exactly one.
			return AgeAt(birthday, NewDate(refYear+1, time.Month(month), day)) == age+1 || refYear < birthYear
		},
		gen.IntRange(2000, 2024),
		gen.IntRange(2000, 2030),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)
}

func TestProperty_NextFollowUpDate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("advancing by months lands in the expected month with a valid day", prop.ForAll(
		func(year, month, day, interval int) bool {
			last := NewDate(year, time.Month(month), day)
			if last.Day() != day {
				// The generated day does not exist in the source month.
				return true
			}

			next := NextFollowUpDate(last, interval)
			if next.IsZero() {
				return false
			}

			wantMonth := (month-1+interval)%12 + 1
			wantYear := year + (month-1+interval)/12
			if next.Year() != wantYear || int(next.Month()) != wantMonth {
				return false
			}
			// The day never overshoots the source day and never collapses
			// below the month-end clamp.
			return next.Day() <= day && next.After(last.Time)
		},
		gen.IntRange(2020, 2027),
		gen.IntRange(1, 12),
		gen.IntRange(1, 31),
		gen.IntRange(1, 24),
	))

	properties.TestingRun(t)
}
