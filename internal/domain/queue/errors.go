package queue

import "errors"

var (
	ErrUnknownOperationType = errors.New("Unknown queued operation type")
	ErrEmptyPayload         = errors.New("Queued operation payload is empty")
)
