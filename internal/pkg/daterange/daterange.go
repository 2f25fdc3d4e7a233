package daterange

import "time"

// Day truncates t to day granularity, dropping the clock and keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Overlaps reports whether the inclusive ranges [aFrom, aTo] and [bFrom, bTo]
// share at least one day: aFrom <= bTo AND aTo >= bFrom.
// All comparisons are at day granularity.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	aFrom, aTo = Day(aFrom), Day(aTo)
	bFrom, bTo = Day(bFrom), Day(bTo)
	return !aFrom.After(bTo) && !aTo.Before(bFrom)
}

// Contains reports whether day falls within the inclusive range [from, to].
func Contains(from, to, day time.Time) bool {
	return Overlaps(from, to, day, day)
}

// BeforeDay reports whether a falls on an earlier calendar day than b.
// Unlike time.Time.Before this ignores the clock, so a 09:00 instant is
// not "before" a 00:00 instant of the same day.
func BeforeDay(a, b time.Time) bool {
	return Day(a).Before(Day(b))
}

// WorkingDays counts Monday-to-Friday days in the inclusive range [from, to].
// Weekends are excluded regardless of any configured work week: vacation
// consumption is a Mon-Fri business rule, not a schedule-dependent one.
func WorkingDays(from, to time.Time) int {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return 0
	}

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}

// MinutesBetween returns the whole minutes from a to b, floored, never negative.
func MinutesBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Minutes())
}
