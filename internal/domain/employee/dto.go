package employee

import "github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"

var trackingStartValues = []string{string(TrackingFromHireDate), string(TrackingFromYearStart)}

type CreateEmployeeRequest struct {
	FullName          string  `json:"full_name"`
	Email             *string `json:"email,omitempty"`
	HireDate          string  `json:"hire_date"`
	TrackingStartType string  `json:"tracking_start_type"`
	WorkScheduleID    *string `json:"work_schedule_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if !validator.IsInSlice(r.TrackingStartType, trackingStartValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "tracking_start_type",
			Message: "tracking_start_type must be one of: from_hire_date, from_year_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID                string  `json:"employee_id"`
	FullName          *string `json:"full_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	HireDate          *string `json:"hire_date,omitempty"`
	TrackingStartType *string `json:"tracking_start_type,omitempty"`
	WorkScheduleID    *string `json:"work_schedule_id,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.TrackingStartType != nil && !validator.IsInSlice(*r.TrackingStartType, trackingStartValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "tracking_start_type",
			Message: "tracking_start_type must be one of: from_hire_date, from_year_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
