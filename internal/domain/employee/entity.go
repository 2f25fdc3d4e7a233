package employee

import "time"

// TrackingStartType controls from which date an employee's presence is tracked.
type TrackingStartType string

const (
	// TrackingFromHireDate: days before the hire date resolve to NotYetHired.
	TrackingFromHireDate TrackingStartType = "from_hire_date"
	// TrackingFromYearStart: the full calendar year is tracked even if the
	// employee was hired mid-year.
	TrackingFromYearStart TrackingStartType = "from_year_start"
)

type Employee struct {
	ID                string
	FullName          string
	Email             *string
	HireDate          time.Time
	TrackingStartType TrackingStartType

	// WorkScheduleID points at a per-employee schedule override. Nil means
	// the company-level schedule applies.
	WorkScheduleID *string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
