package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

type ConflictChecker interface {
	CheckConflicts(ctx context.Context, employeeID string, from, to time.Time, exclude status.ConflictKind) (*status.Conflict, error)
}

type Service struct {
	trip.Repository
	conflicts ConflictChecker
}

func NewService(repo trip.Repository, conflicts ConflictChecker) *Service {
	return &Service{Repository: repo, conflicts: conflicts}
}

// Submit creates a pending trip. Overlap with existing approved trips is not
// a conflict: extending a trip is handled as a new request over the extra
// days, so only foreign kinds (sick leave, ferie, permesso) block it.
func (s *Service) Submit(ctx context.Context, req trip.CreateTripRequest) (trip.BusinessTrip, error) {
	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to parse date_from: %w", err)
	}
	dateTo, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to parse date_to: %w", err)
	}
	dateFrom, dateTo = daterange.Day(dateFrom), daterange.Day(dateTo)
	if dateTo.Before(dateFrom) {
		return trip.BusinessTrip{}, trip.ErrInvalidDateRange
	}

	conflict, err := s.conflicts.CheckConflicts(ctx, req.EmployeeID, dateFrom, dateTo, status.ConflictBusinessTrip)
	if err != nil {
		return trip.BusinessTrip{}, err
	}
	if conflict != nil {
		return trip.BusinessTrip{}, &status.ConflictError{Conflict: *conflict}
	}

	t := trip.BusinessTrip{
		EmployeeID:  req.EmployeeID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Destination: req.Destination,
		Reason:      req.Reason,
		Status:      trip.StatusPending,
	}

	created, err := s.Repository.Create(ctx, t)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to create business trip: %w", err)
	}

	return created, nil
}

func (s *Service) Approve(ctx context.Context, tripID, approverID string) (trip.BusinessTrip, error) {
	t, err := s.Repository.GetByID(ctx, tripID)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to get business trip: %w", err)
	}

	if t.Status != trip.StatusPending {
		return trip.BusinessTrip{}, trip.ErrAlreadyProcessed
	}

	// Conflicts are re-checked at approval time: a foreign record approved
	// after submission must block this one.
	conflict, err := s.conflicts.CheckConflicts(ctx, t.EmployeeID, t.DateFrom, t.DateTo, status.ConflictBusinessTrip)
	if err != nil {
		return trip.BusinessTrip{}, err
	}
	if conflict != nil {
		return trip.BusinessTrip{}, &status.ConflictError{Conflict: *conflict}
	}

	now := time.Now()
	t.Status = trip.StatusApproved
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now

	if err := s.Repository.UpdateStatus(ctx, t); err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to update business trip: %w", err)
	}

	return t, nil
}

func (s *Service) Reject(ctx context.Context, req trip.RejectTripRequest, approverID string) (trip.BusinessTrip, error) {
	t, err := s.Repository.GetByID(ctx, req.ID)
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to get business trip: %w", err)
	}

	if t.Status != trip.StatusPending {
		return trip.BusinessTrip{}, trip.ErrAlreadyProcessed
	}

	now := time.Now()
	t.Status = trip.StatusRejected
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now
	t.RejectionReason = &req.Reason

	if err := s.Repository.UpdateStatus(ctx, t); err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to update business trip: %w", err)
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, employeeID string, statusFilter *trip.Status) ([]trip.BusinessTrip, error) {
	trips, err := s.Repository.ListByEmployee(ctx, employeeID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list business trips: %w", err)
	}
	return trips, nil
}
