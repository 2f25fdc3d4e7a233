package sickleave

import "errors"

var (
	ErrSickLeaveNotFound = errors.New("Sick leave not found")
	ErrInvalidDateRange  = errors.New("Invalid sick leave date range")
	ErrOverlapping       = errors.New("Sick leave overlaps an existing one")
)
