package response

import (
	"errors"
	"net/http"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/employee"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A record conflict carries the clashing record's identity so the
	// client can show it.
	var conflictErr *status.ConflictError
	if errors.As(err, &conflictErr) {
		ConflictWithDetails(w, conflictErr.Error(), map[string]string{
			"kind":      string(conflictErr.Conflict.Kind),
			"record_id": conflictErr.Conflict.RecordID,
		})
		return
	}

	switch {
	// Employee / schedule
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrNoCompanySchedule):
		NotFound(w, "No company work schedule configured")
	case errors.Is(err, schedule.ErrInvalidStartTime),
		errors.Is(err, schedule.ErrInvalidTimeWindow),
		errors.Is(err, schedule.ErrNoWorkingDaySet):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		BadRequest(w, "Leave balance not configured for this year", nil)
	case errors.Is(err, leave.ErrInsufficientDays),
		errors.Is(err, leave.ErrInsufficientHours):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidTimeWindow):
		BadRequest(w, err.Error(), nil)

	// Business trips
	case errors.Is(err, trip.ErrTripNotFound):
		NotFound(w, "Business trip not found")
	case errors.Is(err, trip.ErrAlreadyProcessed):
		Conflict(w, "Business trip already processed")
	case errors.Is(err, trip.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Sick leave
	case errors.Is(err, sickleave.ErrSickLeaveNotFound):
		NotFound(w, "Sick leave not found")
	case errors.Is(err, sickleave.ErrOverlapping):
		Conflict(w, "Sick leave overlaps an existing one")
	case errors.Is(err, sickleave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open attendance session", nil)

	// Overtime
	case errors.Is(err, overtime.ErrEntryNotFound):
		NotFound(w, "Overtime entry not found")
	case errors.Is(err, overtime.ErrAutomaticExists):
		Conflict(w, "An automatic overtime entry already exists for this date")
	case errors.Is(err, overtime.ErrAlreadyProcessed):
		Conflict(w, "Overtime entry already processed")

	// Offline queue
	case errors.Is(err, queue.ErrUnknownOperationType),
		errors.Is(err, queue.ErrEmptyPayload):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
