// Package status models the authoritative per-day employee status as a
// closed set of variants so the resolver's precedence logic stays exhaustive
// instead of leaning on ad hoc string comparisons.
package status

import "time"

type Kind string

const (
	KindNotYetHired   Kind = "not_yet_hired"
	KindPresent       Kind = "present"
	KindSickLeave     Kind = "sick_leave"
	KindBusinessTrip  Kind = "business_trip"
	KindOnLeave       Kind = "on_leave"
	KindAbsent        Kind = "absent"
	KindNonWorkingDay Kind = "non_working_day"
)

var KindValues = []string{
	string(KindNotYetHired),
	string(KindPresent),
	string(KindSickLeave),
	string(KindBusinessTrip),
	string(KindOnLeave),
	string(KindAbsent),
	string(KindNonWorkingDay),
}

// DayStatus is the resolved status of one employee on one calendar day.
// RecordID points at the record that decided the status, when one did.
type DayStatus struct {
	EmployeeID string
	Date       time.Time
	Kind       Kind

	// Description is human-readable detail ("sick leave 2025-07-01..07-05").
	Description string
	RecordID    *string

	// Informational: an approved time-windowed permesso on this day. It does
	// not change Kind by itself.
	PermissionWindow *string
}

// Conflict describes the first record found that clashes with a prospective
// entry. Multiple simultaneous conflicts are not aggregated: first-found wins.
type Conflict struct {
	Kind        ConflictKind
	RecordID    string
	Description string
}

// ConflictError carries the conflict back through the service layer so the
// transport can render the clashing record, not just a generic 409.
type ConflictError struct {
	Conflict Conflict
}

func (e *ConflictError) Error() string {
	return "conflicts with existing record: " + e.Conflict.Description
}

type ConflictKind string

const (
	ConflictBusinessTrip ConflictKind = "business_trip"
	ConflictFerie        ConflictKind = "ferie"
	ConflictPermesso     ConflictKind = "permesso"
	ConflictSickLeave    ConflictKind = "sick_leave"
	ConflictAttendance   ConflictKind = "attendance"
)
