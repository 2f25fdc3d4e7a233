package leave

import "errors"

var (
	ErrRequestNotFound   = errors.New("Leave request not found")
	ErrAlreadyProcessed  = errors.New("Leave request already processed")
	ErrBalanceNotFound   = errors.New("Leave balance not configured for this year")
	ErrInsufficientDays  = errors.New("Insufficient vacation days")
	ErrInsufficientHours = errors.New("Insufficient permission hours")
	ErrInvalidDateRange  = errors.New("Invalid leave date range")
	ErrInvalidTimeWindow = errors.New("Invalid permission time window")
)
