package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
)

// Ledger validates prospective leave requests against the per-employee,
// per-year entitlement and computes their consumption. Validation never
// mutates: consumption happens only on the pending→approved transition.
type Ledger struct {
	balanceRepo leave.BalanceRepository
}

func NewLedger(balanceRepo leave.BalanceRepository) *Ledger {
	return &Ledger{balanceRepo: balanceRepo}
}

// ValidateRequest checks the request against the remaining balance of its
// start year. A missing balance row is a hard precondition failure, not a
// soft warning: HasBalance=false and the request must be rejected.
func (l *Ledger) ValidateRequest(ctx context.Context, req leave.Request) (leave.BalanceValidation, error) {
	bal, err := l.balanceRepo.GetByEmployeeYear(ctx, req.EmployeeID, req.DateFrom.Year())
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.BalanceValidation{
				HasBalance:   false,
				ErrorMessage: fmt.Sprintf("no leave balance configured for %d; ask an administrator to provision it", req.DateFrom.Year()),
			}, nil
		}
		return leave.BalanceValidation{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	result := leave.BalanceValidation{
		HasBalance:               true,
		RemainingVacationDays:    bal.RemainingVacationDays(),
		RemainingPermissionHours: bal.RemainingPermissionHours(),
	}

	switch req.Type {
	case leave.TypeFerie:
		result.RequiredVacationDays = RequiredVacationDays(req.DateFrom, req.DateTo)
		if result.RequiredVacationDays.GreaterThan(result.RemainingVacationDays) {
			result.ExceedsLimit = true
			result.ErrorMessage = fmt.Sprintf("request needs %s vacation days, %s remaining",
				result.RequiredVacationDays, result.RemainingVacationDays)
		}

	case leave.TypePermesso:
		hours, err := RequiredPermissionHours(req.TimeFrom, req.TimeTo)
		if err != nil {
			return leave.BalanceValidation{}, err
		}
		result.RequiredPermissionHours = hours
		if hours.GreaterThan(result.RemainingPermissionHours) {
			result.ExceedsLimit = true
			result.ErrorMessage = fmt.Sprintf("request needs %s permission hours, %s remaining",
				hours, result.RemainingPermissionHours)
		}

	default:
		return leave.BalanceValidation{}, fmt.Errorf("unknown leave type %q", req.Type)
	}

	return result, nil
}

// Consume books the approved request's consumption into the balance row.
// Callers run this inside the same transaction as the status transition.
func (l *Ledger) Consume(ctx context.Context, req leave.Request) error {
	days := decimal.Zero
	hours := decimal.Zero

	switch req.Type {
	case leave.TypeFerie:
		days = RequiredVacationDays(req.DateFrom, req.DateTo)
	case leave.TypePermesso:
		var err error
		hours, err = RequiredPermissionHours(req.TimeFrom, req.TimeTo)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown leave type %q", req.Type)
	}

	if err := l.balanceRepo.AddUsed(ctx, req.EmployeeID, req.DateFrom.Year(), days, hours); err != nil {
		return fmt.Errorf("failed to consume leave balance: %w", err)
	}

	return nil
}

// RequiredVacationDays counts Mon-Fri days in [from, to] inclusive. Weekend
// days never count, regardless of the employee's configured work week.
func RequiredVacationDays(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(daterange.WorkingDays(from, to)))
}

// RequiredPermissionHours returns timeTo-timeFrom in hours when both are
// given, else the flat full-day consumption of 8 hours.
func RequiredPermissionHours(timeFrom, timeTo *string) (decimal.Decimal, error) {
	if timeFrom == nil || timeTo == nil {
		return leave.FullDayPermissionHours, nil
	}

	from, err := time.Parse("15:04", *timeFrom)
	if err != nil {
		return decimal.Zero, leave.ErrInvalidTimeWindow
	}
	to, err := time.Parse("15:04", *timeTo)
	if err != nil {
		return decimal.Zero, leave.ErrInvalidTimeWindow
	}
	if !to.After(from) {
		return decimal.Zero, leave.ErrInvalidTimeWindow
	}

	minutes := to.Sub(from).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)), nil
}
