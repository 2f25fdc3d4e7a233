package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("Work schedule not found")
	ErrNoCompanySchedule = errors.New("No company work schedule configured")
	ErrInvalidStartTime  = errors.New("Invalid schedule start time")
	ErrInvalidTimeWindow = errors.New("Schedule end time must be after start time")
	ErrNoWorkingDaySet   = errors.New("Schedule must mark at least one working day")
)
