package sickleave

import "time"

// SickLeave has no approval step: once recorded it is authoritative for
// every day in its inclusive [StartDate, EndDate] range.
type SickLeave struct {
	ID          string
	EmployeeID  string
	StartDate   time.Time
	EndDate     time.Time
	Certificate *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
}
