// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}

// MinutesSinceMidnight returns t's wall-clock position in minutes.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
