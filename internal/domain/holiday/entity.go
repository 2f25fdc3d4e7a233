package holiday

import "time"

// Holiday is either a fixed calendar date or a recurring month/day marker
// that applies to every year (e.g. 25 December).
type Holiday struct {
	ID   string
	Name string

	// Fixed-date holiday. Zero when Recurring is set.
	Date time.Time

	Recurring bool
	Month     int // 1..12, recurring only
	Day       int // 1..31, recurring only

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the holiday falls on the given calendar day.
func (h Holiday) Matches(day time.Time) bool {
	if h.Recurring {
		return int(day.Month()) == h.Month && day.Day() == h.Day
	}
	return h.Date.Year() == day.Year() && h.Date.Month() == day.Month() && h.Date.Day() == day.Day()
}
