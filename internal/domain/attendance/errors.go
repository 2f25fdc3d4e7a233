package attendance

import "errors"

var (
	ErrRecordNotFound   = errors.New("Attendance record not found")
	ErrAlreadyCheckedIn = errors.New("Already checked in for this date")
	ErrNotCheckedIn     = errors.New("No open attendance session")
)
