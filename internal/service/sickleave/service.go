package sickleave

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

type Service struct {
	sickleave.Repository
}

func NewService(repo sickleave.Repository) *Service {
	return &Service{Repository: repo}
}

// Record stores a sick leave. There is no approval step and no conflict
// check against other record kinds: sick leave outranks them all at status
// resolution. Only overlap with another sick leave is rejected, since that
// would record the same days twice.
func (s *Service) Record(ctx context.Context, req sickleave.CreateSickLeaveRequest) (sickleave.SickLeave, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to parse end_date: %w", err)
	}
	startDate, endDate = daterange.Day(startDate), daterange.Day(endDate)
	if endDate.Before(startDate) {
		return sickleave.SickLeave{}, sickleave.ErrInvalidDateRange
	}

	overlapping, err := s.Repository.ListOverlapping(ctx, req.EmployeeID, startDate, endDate)
	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to check overlapping sick leaves: %w", err)
	}
	if len(overlapping) > 0 {
		return sickleave.SickLeave{}, sickleave.ErrOverlapping
	}

	sl := sickleave.SickLeave{
		EmployeeID:  req.EmployeeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Certificate: req.Certificate,
		Notes:       req.Notes,
	}

	created, err := s.Repository.Create(ctx, sl)
	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to create sick leave: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context, employeeID string) ([]sickleave.SickLeave, error) {
	leaves, err := s.Repository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	return leaves, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get sick leave: %w", err)
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sick leave: %w", err)
	}
	return nil
}
