package trip

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t BusinessTrip) (BusinessTrip, error)
	GetByID(ctx context.Context, id string) (BusinessTrip, error)

	// ListApprovedOverlapping returns approved trips of the employee whose
	// inclusive range overlaps [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]BusinessTrip, error)

	ListByEmployee(ctx context.Context, employeeID string, status *Status) ([]BusinessTrip, error)
	UpdateStatus(ctx context.Context, t BusinessTrip) error
}
