package status

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

// CheckConflicts scans the employee's approved/active records of every kind
// except `exclude` for overlap with [from, to] and returns the first
// conflicting record found, or nil. Multiple simultaneous conflicts are not
// aggregated: first-found wins, and the scan order below is fixed.
//
// Pass the kind of the record being created as `exclude` so a new trip is
// not rejected against existing trips (range-extension of an existing trip
// is an update, not a conflict).
func (r *Resolver) CheckConflicts(ctx context.Context, employeeID string, from, to time.Time, exclude status.ConflictKind) (*status.Conflict, error) {
	from, to = daterange.Day(from), daterange.Day(to)

	if exclude != status.ConflictSickLeave {
		sickLeaves, err := r.sickRepo.ListOverlapping(ctx, employeeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to check sick leave conflicts: %w", err)
		}
		if len(sickLeaves) > 0 {
			sl := sickLeaves[0]
			return &status.Conflict{
				Kind:     status.ConflictSickLeave,
				RecordID: sl.ID,
				Description: fmt.Sprintf("sick leave from %s to %s",
					sl.StartDate.Format("2006-01-02"), sl.EndDate.Format("2006-01-02")),
			}, nil
		}
	}

	if exclude != status.ConflictBusinessTrip {
		trips, err := r.tripRepo.ListApprovedOverlapping(ctx, employeeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to check business trip conflicts: %w", err)
		}
		if len(trips) > 0 {
			t := trips[0]
			return &status.Conflict{
				Kind:     status.ConflictBusinessTrip,
				RecordID: t.ID,
				Description: fmt.Sprintf("approved business trip from %s to %s",
					t.DateFrom.Format("2006-01-02"), t.DateTo.Format("2006-01-02")),
			}, nil
		}
	}

	if exclude != status.ConflictFerie && exclude != status.ConflictPermesso {
		leaves, err := r.leaveRepo.ListApprovedOverlapping(ctx, employeeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to check leave conflicts: %w", err)
		}
		if len(leaves) > 0 {
			lr := leaves[0]
			kind := status.ConflictFerie
			desc := fmt.Sprintf("approved ferie from %s to %s",
				lr.DateFrom.Format("2006-01-02"), lr.DateTo.Format("2006-01-02"))
			if lr.Type == leave.TypePermesso {
				kind = status.ConflictPermesso
				desc = fmt.Sprintf("approved permesso on %s", lr.DateFrom.Format("2006-01-02"))
			}
			return &status.Conflict{
				Kind:        kind,
				RecordID:    lr.ID,
				Description: desc,
			}, nil
		}
	}

	return nil, nil
}
