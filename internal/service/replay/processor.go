// Package replay dispatches drained offline operations to the services that
// own their semantics.
package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainattendance "github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	domainleave "github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	domainovertime "github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	domainqueue "github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/service/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/service/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/service/overtime"
)

// Processor replays queued operations. Replays rely on the services'
// idempotency (natural-key upserts, same-timestamp tolerance) so that an
// operation delivered twice after a lost acknowledgment cannot duplicate.
type Processor struct {
	attendance *attendance.Service
	overtime   *overtime.Service
	leave      *leave.Service
}

func NewProcessor(attendanceService *attendance.Service, overtimeService *overtime.Service, leaveService *leave.Service) *Processor {
	return &Processor{
		attendance: attendanceService,
		overtime:   overtimeService,
		leave:      leaveService,
	}
}

func (p *Processor) Process(ctx context.Context, op domainqueue.Operation) error {
	switch op.Type {
	case domainqueue.OpAttendanceCheckIn:
		var req domainattendance.CheckRequest
		if err := json.Unmarshal(op.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode check-in payload: %w", err)
		}
		_, err := p.attendance.CheckIn(ctx, req)
		// A session already opened by an earlier delivery of this operation
		// is success, not a retryable failure.
		if errors.Is(err, domainattendance.ErrAlreadyCheckedIn) {
			return nil
		}
		return err

	case domainqueue.OpAttendanceCheckOut:
		var req domainattendance.CheckRequest
		if err := json.Unmarshal(op.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode check-out payload: %w", err)
		}
		_, err := p.attendance.CheckOut(ctx, req)
		return err

	case domainqueue.OpOvertime:
		var req domainovertime.CreateOvertimeRequest
		if err := json.Unmarshal(op.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode overtime payload: %w", err)
		}
		_, err := p.overtime.Submit(ctx, req)
		if errors.Is(err, domainovertime.ErrAutomaticExists) {
			return nil
		}
		return err

	case domainqueue.OpLeaveRequest:
		var req domainleave.CreateLeaveRequestRequest
		if err := json.Unmarshal(op.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode leave request payload: %w", err)
		}
		_, err := p.leave.Submit(ctx, req)
		return err

	default:
		return fmt.Errorf("%w: %s", domainqueue.ErrUnknownOperationType, op.Type)
	}
}
