package overtime

import "errors"

var (
	ErrEntryNotFound    = errors.New("Overtime entry not found")
	ErrAutomaticExists  = errors.New("An automatic overtime entry already exists for this date")
	ErrAlreadyProcessed = errors.New("Overtime entry already processed")
)
