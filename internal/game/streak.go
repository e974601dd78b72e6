package game

import "time"

// DateLayout is the calendar-day format used everywhere in the engine.
// Dates are UTC and carry no time component.
const DateLayout = "2006-01-02"

// NextStreak computes the streak value after a win on today, given the date
// of the previous recorded win. A win on consecutive days extends the streak,
// a repeated win on the same day leaves it unchanged (idempotent re-entry),
// anything else starts over at 1. Streaks never decay by elapsed time alone.
func NextStreak(lastPlayed, today string, current int) int {
	switch lastPlayed {
	case today:
		return current
	case PreviousDate(today):
		return current + 1
	default:
		return 1
	}
}

// PreviousDate returns the calendar day before date, or empty string when
// date does not parse.
func PreviousDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// ValidDate reports whether date is a well-formed calendar day.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
