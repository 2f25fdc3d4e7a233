package overtime

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Entry, error)
	ListByEmployee(ctx context.Context, employeeID string, status *Status) ([]Entry, error)
	UpdateStatus(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
