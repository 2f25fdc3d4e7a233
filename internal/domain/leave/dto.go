package leave

import (
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"leave_type"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	TimeFrom   *string `json:"time_from,omitempty"`
	TimeTo     *string `json:"time_to,omitempty"`
	Reason     string  `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: ferie, permesso",
		})
	}

	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}

	switch Type(r.Type) {
	case TypeFerie:
		if _, ok := validator.IsValidDate(r.DateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be a valid date (YYYY-MM-DD)",
			})
		}
		if r.TimeFrom != nil || r.TimeTo != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "time_from",
				Message: "time windows only apply to permesso requests",
			})
		}
	case TypePermesso:
		if (r.TimeFrom == nil) != (r.TimeTo == nil) {
			errs = append(errs, validator.ValidationError{
				Field:   "time_from",
				Message: "time_from and time_to must be given together",
			})
		}
		if r.TimeFrom != nil && !validator.IsValidClock(*r.TimeFrom) {
			errs = append(errs, validator.ValidationError{
				Field:   "time_from",
				Message: "time_from must be a valid time (HH:MM)",
			})
		}
		if r.TimeTo != nil && !validator.IsValidClock(*r.TimeTo) {
			errs = append(errs, validator.ValidationError{
				Field:   "time_to",
				Message: "time_to must be a valid time (HH:MM)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequestRequest struct {
	ID     string `json:"leave_request_id"`
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_id",
			Message: "leave_request_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateBalanceRequest struct {
	EmployeeID           string          `json:"employee_id"`
	Year                 int             `json:"year"`
	VacationDaysTotal    decimal.Decimal `json:"vacation_days_total"`
	PermissionHoursTotal decimal.Decimal `json:"permission_hours_total"`
}

func (r *CreateBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.VacationDaysTotal.IsNegative() || r.PermissionHoursTotal.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "vacation_days_total",
			Message: "balance totals must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
