package queue

import (
	"encoding/json"
	"time"
)

// OperationType identifies what a queued mutation replays against the
// remote store once connectivity returns.
type OperationType string

const (
	OpAttendanceCheckIn  OperationType = "attendance-checkin"
	OpAttendanceCheckOut OperationType = "attendance-checkout"
	OpOvertime           OperationType = "overtime"
	OpLeaveRequest       OperationType = "leave-request"
)

var OperationTypeValues = []string{
	string(OpAttendanceCheckIn),
	string(OpAttendanceCheckOut),
	string(OpOvertime),
	string(OpLeaveRequest),
}

// Operation is one pending offline mutation. Retries counts failed drain
// attempts; once it reaches the queue's retry ceiling the operation is
// dropped with a failure signal instead of retried forever.
//
// There is no idempotency key beyond the payload's natural identity:
// processors must perform natural-key upserts (employee+date for
// attendance) so a replay after a lost acknowledgment cannot duplicate.
type Operation struct {
	ID        string          `json:"id"`
	Type      OperationType   `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Retries   int             `json:"retries"`
}

// Store is the durable local backing for the queue: one ordered list under
// a single fixed key, JSON-serialized. Single-writer usage is assumed;
// concurrent writers are not detected.
type Store interface {
	Load() ([]Operation, error)
	Save(ops []Operation) error
}
