package overtime

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Entry is an overtime record for one day. Automatic entries are created by
// the detector when a check-in lands before the tolerance-adjusted shift
// start; they always start pending. A day carries at most one entry.
type Entry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Minutes    int
	Automatic  bool
	Reason     *string

	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lateness is the detector's check-in verdict.
type Lateness struct {
	IsLate      bool
	LateMinutes int
}
