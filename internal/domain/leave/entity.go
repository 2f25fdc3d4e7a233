package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes the two leave shapes: ferie is a multi-day vacation
// consuming whole working days, permesso is a single-day permission consuming
// hours (a specific window, or a flat 8-hour full day).
type Type string

const (
	TypeFerie    Type = "ferie"
	TypePermesso Type = "permesso"
)

var TypeValues = []string{string(TypeFerie), string(TypePermesso)}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// FullDayPermissionHours is the flat consumption of a permesso with no
// explicit time window.
var FullDayPermissionHours = decimal.NewFromInt(8)

// Request is a leave request. Ferie carries DateFrom/DateTo (inclusive);
// permesso carries Day plus an optional TimeFrom/TimeTo window in "15:04"
// form. Only approved requests participate in conflict resolution and
// balance consumption.
type Request struct {
	ID         string
	EmployeeID string
	Type       Type

	// Ferie range, inclusive. Day-granular.
	DateFrom time.Time
	DateTo   time.Time

	// Permesso fields. For permesso, DateFrom == DateTo == Day.
	TimeFrom *string
	TimeTo   *string

	Reason string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses.
	EmployeeName *string
}

// IsFullDayPermesso reports whether the request is a permesso with no time
// window. A time-windowed permesso never changes the day status by itself.
func (r Request) IsFullDayPermesso() bool {
	return r.Type == TypePermesso && r.TimeFrom == nil && r.TimeTo == nil
}

// Balance is the per-employee, per-year entitlement row. Used <= Total is
// advisory: validation rejects requests that would exceed it, but an admin
// correction may push Used past Total and the ledger does not forbid that.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int

	VacationDaysTotal    decimal.Decimal
	VacationDaysUsed     decimal.Decimal
	PermissionHoursTotal decimal.Decimal
	PermissionHoursUsed  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingVacationDays returns Total - Used for vacation days.
func (b Balance) RemainingVacationDays() decimal.Decimal {
	return b.VacationDaysTotal.Sub(b.VacationDaysUsed)
}

// RemainingPermissionHours returns Total - Used for permission hours.
func (b Balance) RemainingPermissionHours() decimal.Decimal {
	return b.PermissionHoursTotal.Sub(b.PermissionHoursUsed)
}

// BalanceValidation is the structured result of validating a prospective
// request against the remaining balance. It is returned, never thrown: the
// caller decides whether to block submission.
type BalanceValidation struct {
	HasBalance               bool
	ExceedsLimit             bool
	RequiredVacationDays     decimal.Decimal
	RequiredPermissionHours  decimal.Decimal
	RemainingVacationDays    decimal.Decimal
	RemainingPermissionHours decimal.Decimal
	ErrorMessage             string
}
