package schedule

import "time"

// WorkSchedule is a weekly working pattern. The company-level schedule
// (EmployeeID nil) is the fallback when an employee has no override.
type WorkSchedule struct {
	ID         string
	EmployeeID *string
	Name       string

	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool

	// StartTime/EndTime in "15:04" wall-clock form.
	StartTime        string
	EndTime          string
	ToleranceMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorksOn reports whether the schedule marks the given weekday as working.
func (s WorkSchedule) WorksOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	}
	return false
}

// StartOn anchors the schedule's start time on the given calendar day.
func (s WorkSchedule) StartOn(day time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
