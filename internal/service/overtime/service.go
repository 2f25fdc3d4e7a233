package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

type Service struct {
	overtime.Repository
}

func NewService(repo overtime.Repository) *Service {
	return &Service{Repository: repo}
}

// Submit creates a manual overtime entry. A date that already carries an
// automatic entry rejects the manual one: the automatic record wins and the
// employee must wait for its approval cycle instead.
func (s *Service) Submit(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.Entry, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to parse date: %w", err)
	}
	date = daterange.Day(date)

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to check existing overtime: %w", err)
	}
	if existing != nil && existing.Automatic {
		return overtime.Entry{}, overtime.ErrAutomaticExists
	}

	entry := overtime.Entry{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Minutes:    req.Minutes,
		Automatic:  false,
		Reason:     req.Reason,
		Status:     overtime.StatusPending,
	}

	created, err := s.Repository.Create(ctx, entry)
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to create overtime entry: %w", err)
	}

	return created, nil
}

// RecordAutomatic persists a detector-generated entry for the day. It is a
// no-op when any entry already exists for that date, so re-processing a
// replayed check-in stays idempotent.
func (s *Service) RecordAutomatic(ctx context.Context, employeeID string, date time.Time, minutes int) (*overtime.Entry, error) {
	date = daterange.Day(date)

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing overtime: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	reason := "checked in before shift start"
	entry := overtime.Entry{
		EmployeeID: employeeID,
		Date:       date,
		Minutes:    minutes,
		Automatic:  true,
		Reason:     &reason,
		Status:     overtime.StatusPending,
	}

	created, err := s.Repository.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create automatic overtime entry: %w", err)
	}

	return &created, nil
}

func (s *Service) Approve(ctx context.Context, entryID, approverID string) (overtime.Entry, error) {
	return s.transition(ctx, entryID, approverID, overtime.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, entryID, approverID string) (overtime.Entry, error) {
	return s.transition(ctx, entryID, approverID, overtime.StatusRejected)
}

func (s *Service) transition(ctx context.Context, entryID, approverID string, to overtime.Status) (overtime.Entry, error) {
	entry, err := s.Repository.GetByID(ctx, entryID)
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to get overtime entry: %w", err)
	}

	if entry.Status != overtime.StatusPending {
		return overtime.Entry{}, overtime.ErrAlreadyProcessed
	}

	now := time.Now()
	entry.Status = to
	entry.ApprovedBy = &approverID
	entry.ApprovedAt = &now

	if err := s.Repository.UpdateStatus(ctx, entry); err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to update overtime entry: %w", err)
	}

	return entry, nil
}

// Remove deletes an overtime entry. Admins use it to clear an automatic
// entry so the employee can submit a manual one for that day.
func (s *Service) Remove(ctx context.Context, entryID string) error {
	if _, err := s.Repository.GetByID(ctx, entryID); err != nil {
		return fmt.Errorf("failed to get overtime entry: %w", err)
	}

	if err := s.Repository.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete overtime entry: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, employeeID string, statusFilter *overtime.Status) ([]overtime.Entry, error) {
	entries, err := s.Repository.ListByEmployee(ctx, employeeID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime entries: %w", err)
	}
	return entries, nil
}
