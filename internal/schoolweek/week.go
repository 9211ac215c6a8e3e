// Package schoolweek derives the 1-based school-week number from a target date
// and the configured semester start date.
package schoolweek

import "time"

// MondayOf returns the Monday of the week containing t, at midnight in t's
// location. Dates are treated as naive calendar dates.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday, 0 = Monday
	return day.AddDate(0, 0, -offset)
}

// WeekOf maps target to its school-week number relative to start. The week
// containing start is week 1 regardless of which weekday start falls on.
// Targets before the start week yield values <= 0; callers must treat those as
// pre-semester rather than clamping.
func WeekOf(target, start time.Time) int {
	// Compare as UTC calendar dates so DST transitions in the input locations
	// cannot skew the day count.
	diff := asUTCDate(MondayOf(target)).Sub(asUTCDate(MondayOf(start)))
	days := int(diff.Hours() / 24)
	return days/7 + 1
}

func asUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
