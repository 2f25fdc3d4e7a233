package attendance

import "time"

type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time

	CheckIn  *time.Time
	CheckOut *time.Time

	IsManual       bool
	IsBusinessTrip bool
	IsLate         bool
	LateMinutes    int

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
}
