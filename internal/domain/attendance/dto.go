package attendance

import "github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"

type CheckRequest struct {
	EmployeeID string `json:"employee_id"`
	// Timestamp is the moment the action happened on the device, not the
	// moment the server received it. Offline replays carry the original.
	Timestamp string `json:"timestamp"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC 3339 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EditRequest is an administrative correction of one day's record.
type EditRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
}

func (r *EditRequest) Validate() error {
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
	if r.CheckIn == nil && r.CheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "at least one of check_in, check_out is required",
		})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid RFC 3339 datetime",
			})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid RFC 3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
