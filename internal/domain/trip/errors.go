package trip

import "errors"

var (
	ErrTripNotFound     = errors.New("Business trip not found")
	ErrAlreadyProcessed = errors.New("Business trip already processed")
	ErrInvalidDateRange = errors.New("Invalid trip date range")
)
