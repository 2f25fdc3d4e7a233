package holiday

import "github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"

type CreateHolidayRequest struct {
	Name string `json:"name"`

	// Date for a fixed holiday; Month/Day for a recurring one.
	Date      *string `json:"date,omitempty"`
	Recurring bool    `json:"recurring"`
	Month     int     `json:"month,omitempty"`
	Day       int     `json:"day,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Recurring {
		if r.Month < 1 || r.Month > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
		if r.Day < 1 || r.Day > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "day",
				Message: "day must be between 1 and 31",
			})
		}
	} else {
		if r.Date == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date is required for fixed holidays",
			})
		} else if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
