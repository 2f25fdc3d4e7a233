package trip

import "github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"

type CreateTripRequest struct {
	EmployeeID  string `json:"employee_id"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

func (r *CreateTripRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}
	if validator.IsEmpty(r.Destination) {
		errs = append(errs, validator.ValidationError{
			Field:   "destination",
			Message: "destination is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectTripRequest struct {
	ID     string `json:"business_trip_id"`
	Reason string `json:"reason"`
}

func (r *RejectTripRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_trip_id",
			Message: "business_trip_id is required",
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
