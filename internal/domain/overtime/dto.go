package overtime

import "github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"

type CreateOvertimeRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Minutes    int     `json:"minutes"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.Minutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
