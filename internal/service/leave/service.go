package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
	"github.com/presenzeapp/presenze-backend-go/internal/repository/postgresql"
)

// ConflictChecker reports the first existing record that clashes with a
// prospective entry in [from, to].
type ConflictChecker interface {
	CheckConflicts(ctx context.Context, employeeID string, from, to time.Time, exclude status.ConflictKind) (*status.Conflict, error)
}

type Service struct {
	leave.RequestRepository
	leave.BalanceRepository
	ledger    *Ledger
	conflicts ConflictChecker

	// runTx wraps the status transition and the balance consumption in one
	// database transaction.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(db *database.DB, requestRepo leave.RequestRepository, balanceRepo leave.BalanceRepository, conflicts ConflictChecker) *Service {
	return &Service{
		RequestRepository: requestRepo,
		BalanceRepository: balanceRepo,
		ledger:            NewLedger(balanceRepo),
		conflicts:         conflicts,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Submit validates and persists a new pending request. Nothing is consumed
// from the balance here.
func (s *Service) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.Request, error) {
	request, err := s.buildRequest(req)
	if err != nil {
		return leave.Request{}, err
	}

	validation, err := s.ledger.ValidateRequest(ctx, request)
	if err != nil {
		return leave.Request{}, err
	}
	if !validation.HasBalance {
		return leave.Request{}, leave.ErrBalanceNotFound
	}
	if validation.ExceedsLimit {
		if request.Type == leave.TypeFerie {
			return leave.Request{}, fmt.Errorf("%w: %s", leave.ErrInsufficientDays, validation.ErrorMessage)
		}
		return leave.Request{}, fmt.Errorf("%w: %s", leave.ErrInsufficientHours, validation.ErrorMessage)
	}

	conflict, err := s.conflicts.CheckConflicts(ctx, request.EmployeeID, request.DateFrom, request.DateTo, conflictKind(request))
	if err != nil {
		return leave.Request{}, err
	}
	if conflict != nil {
		return leave.Request{}, &status.ConflictError{Conflict: *conflict}
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// Validate runs balance validation for a prospective request without
// persisting anything. Clients use it for pre-submission feedback.
func (s *Service) Validate(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.BalanceValidation, error) {
	request, err := s.buildRequest(req)
	if err != nil {
		return leave.BalanceValidation{}, err
	}
	return s.ledger.ValidateRequest(ctx, request)
}

// Approve marks a pending request approved and books its consumption. The
// transition and the balance increment commit atomically; validation is
// re-run so an approval landing after other approvals cannot overdraw.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	validation, err := s.ledger.ValidateRequest(ctx, request)
	if err != nil {
		return leave.Request{}, err
	}
	if !validation.HasBalance {
		return leave.Request{}, leave.ErrBalanceNotFound
	}
	if validation.ExceedsLimit {
		if request.Type == leave.TypeFerie {
			return leave.Request{}, fmt.Errorf("%w: %s", leave.ErrInsufficientDays, validation.ErrorMessage)
		}
		return leave.Request{}, fmt.Errorf("%w: %s", leave.ErrInsufficientHours, validation.ErrorMessage)
	}

	// Conflicts are re-checked at approval time: a sick leave or trip
	// recorded after submission must block this one.
	conflict, err := s.conflicts.CheckConflicts(ctx, request.EmployeeID, request.DateFrom, request.DateTo, conflictKind(request))
	if err != nil {
		return leave.Request{}, err
	}
	if conflict != nil {
		return leave.Request{}, &status.ConflictError{Conflict: *conflict}
	}

	now := time.Now()
	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return s.ledger.Consume(ctx, request)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

// Reject marks a pending request rejected. The balance is untouched.
func (s *Service) Reject(ctx context.Context, req leave.RejectLeaveRequestRequest, approverID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	now := time.Now()
	request.Status = leave.RequestStatusRejected
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	request.RejectionReason = &req.Reason

	if err := s.RequestRepository.UpdateStatus(ctx, request); err != nil {
		return leave.Request{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return request, nil
}

func (s *Service) List(ctx context.Context, employeeID string, statusFilter *leave.RequestStatus) ([]leave.Request, error) {
	requests, err := s.RequestRepository.ListByEmployee(ctx, employeeID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

func (s *Service) GetBalance(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	return s.BalanceRepository.GetByEmployeeYear(ctx, employeeID, year)
}

// ProvisionBalance creates the per-year entitlement row for an employee.
func (s *Service) ProvisionBalance(ctx context.Context, req leave.CreateBalanceRequest) (leave.Balance, error) {
	bal := leave.Balance{
		EmployeeID:           req.EmployeeID,
		Year:                 req.Year,
		VacationDaysTotal:    req.VacationDaysTotal,
		PermissionHoursTotal: req.PermissionHoursTotal,
	}

	created, err := s.BalanceRepository.Create(ctx, bal)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return created, nil
}

// buildRequest parses and sanity-checks the DTO into a pending Request.
func (s *Service) buildRequest(req leave.CreateLeaveRequestRequest) (leave.Request, error) {
	dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to parse date_from: %w", err)
	}

	request := leave.Request{
		EmployeeID: req.EmployeeID,
		Type:       leave.Type(req.Type),
		DateFrom:   daterange.Day(dateFrom),
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	}

	switch request.Type {
	case leave.TypeFerie:
		dateTo, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return leave.Request{}, fmt.Errorf("failed to parse date_to: %w", err)
		}
		request.DateTo = daterange.Day(dateTo)
		if request.DateTo.Before(request.DateFrom) {
			return leave.Request{}, leave.ErrInvalidDateRange
		}

	case leave.TypePermesso:
		// Permesso is single-day.
		request.DateTo = request.DateFrom
		request.TimeFrom = req.TimeFrom
		request.TimeTo = req.TimeTo
		if _, err := RequiredPermissionHours(req.TimeFrom, req.TimeTo); err != nil {
			return leave.Request{}, err
		}

	default:
		return leave.Request{}, fmt.Errorf("unknown leave type %q", req.Type)
	}

	return request, nil
}

func conflictKind(req leave.Request) status.ConflictKind {
	if req.Type == leave.TypePermesso {
		return status.ConflictPermesso
	}
	return status.ConflictFerie
}
