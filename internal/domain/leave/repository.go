package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// ListApprovedOverlapping returns approved requests of the employee whose
	// inclusive range overlaps [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)

	// ListByEmployee returns the employee's requests, optionally filtered by status.
	ListByEmployee(ctx context.Context, employeeID string, status *RequestStatus) ([]Request, error)

	// UpdateStatus records a status transition with approver metadata.
	UpdateStatus(ctx context.Context, req Request) error
}

type BalanceRepository interface {
	// GetByEmployeeYear returns ErrBalanceNotFound when no row exists.
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (Balance, error)
	Create(ctx context.Context, bal Balance) (Balance, error)

	// AddUsed increments the consumed counters. Negative deltas restore
	// balance (e.g. when an approved request is later cancelled by an admin).
	AddUsed(ctx context.Context, employeeID string, year int, vacationDays, permissionHours decimal.Decimal) error
}
