package sickleave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, sl SickLeave) (SickLeave, error)
	GetByID(ctx context.Context, id string) (SickLeave, error)

	// ListOverlapping returns sick leaves of the employee whose inclusive
	// range overlaps [from, to].
	ListOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]SickLeave, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]SickLeave, error)
	Delete(ctx context.Context, id string) error
}
