package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert writes the record keyed by (employee, date). The natural-key
	// upsert keeps offline replays idempotent: re-delivering the same
	// check-in after a lost acknowledgment overwrites rather than duplicates.
	Upsert(ctx context.Context, rec Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
