package helpers

import "time"

// TruncateToDay normalizes a timestamp to midnight UTC so day arithmetic
// is not skewed by intake timezones.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween calculates the number of days between two dates, with both
// normalized to the beginning of the day. Negative spans clamp to zero.
func DaysBetween(start, end time.Time) int {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// YearStart returns January 1 of the given year, UTC midnight.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31 of the given year, UTC midnight.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// LaterOf returns the later of two times.
func LaterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// EarlierOf returns the earlier of two times.
func EarlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
