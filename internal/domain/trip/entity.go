package trip

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// BusinessTrip is an approved away-from-office period. It counts as worked
// time but overrides normal attendance expectations. Only approved trips
// participate in conflict resolution.
type BusinessTrip struct {
	ID          string
	EmployeeID  string
	DateFrom    time.Time
	DateTo      time.Time
	Destination string
	Reason      string

	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
}
