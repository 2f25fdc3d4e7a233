package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/employee"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
	overtimeservice "github.com/presenzeapp/presenze-backend-go/internal/service/overtime"
)

// ScheduleSource resolves the schedule in force for an employee, falling
// back to the company-level one.
type ScheduleSource interface {
	EffectiveSchedule(ctx context.Context, emp employee.Employee) (schedule.WorkSchedule, error)
	CheckConflicts(ctx context.Context, employeeID string, from, to time.Time, exclude status.ConflictKind) (*status.Conflict, error)
}

type Service struct {
	attendance.Repository
	employeeRepo employee.Repository

	schedules ScheduleSource
	detector  *overtimeservice.Detector
	overtime  *overtimeservice.Service

	// autoOvertime gates detector-generated overtime entries on early
	// check-ins. Lateness detection is always on.
	autoOvertime bool
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	schedules ScheduleSource,
	detector *overtimeservice.Detector,
	overtimeService *overtimeservice.Service,
	autoOvertime bool,
) *Service {
	return &Service{
		Repository:   attendanceRepo,
		employeeRepo: employeeRepo,
		schedules:    schedules,
		detector:     detector,
		overtime:     overtimeService,
		autoOvertime: autoOvertime,
	}
}

// CheckIn records a check-in at the request's device timestamp. Replaying
// the same check-in (same employee, day and timestamp) succeeds with the
// stored record instead of failing, so queued offline operations can be
// re-delivered after a lost acknowledgment.
func (s *Service) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.Record, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	day := daterange.Day(at)

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		if existing.CheckIn.Equal(at) {
			return *existing, nil
		}
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	// No conflict gate here: clocking in during an approved trip or leave is
	// legitimate (IsBusinessTrip marks the overlap), and the resolver's
	// precedence decides the day status either way. Conflict validation
	// applies to manual edits, trips and leave requests.
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}

	sched, err := s.schedules.EffectiveSchedule(ctx, emp)
	if err != nil {
		return attendance.Record{}, err
	}

	lateness, err := s.detector.EvaluateLateness(sched, at)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to evaluate lateness: %w", err)
	}

	rec := attendance.Record{
		EmployeeID:  req.EmployeeID,
		Date:        day,
		CheckIn:     &at,
		IsLate:      lateness.IsLate,
		LateMinutes: lateness.LateMinutes,
	}
	if existing != nil {
		rec.CheckOut = existing.CheckOut
		rec.IsBusinessTrip = existing.IsBusinessTrip
	}

	saved, err := s.Repository.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	if s.autoOvertime {
		minutes, err := s.detector.EvaluateAutoOvertime(sched, at)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to evaluate overtime: %w", err)
		}
		if minutes > 0 {
			if _, err := s.overtime.RecordAutomatic(ctx, req.EmployeeID, day, minutes); err != nil {
				return attendance.Record{}, err
			}
		}
	}

	return saved, nil
}

// CheckOut closes the day's open session. Like CheckIn it is idempotent on
// replay of the same timestamp.
func (s *Service) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.Record, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	day := daterange.Day(at)

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil && existing.CheckOut.Equal(at) {
		return *existing, nil
	}
	if at.Before(*existing.CheckIn) {
		return attendance.Record{}, fmt.Errorf("check-out %s precedes check-in %s",
			at.Format(time.RFC3339), existing.CheckIn.Format(time.RFC3339))
	}

	rec := *existing
	rec.CheckOut = &at

	saved, err := s.Repository.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	return saved, nil
}

// Edit is an administrative correction. The record is flagged manual and
// lateness is recomputed from the corrected check-in.
func (s *Service) Edit(ctx context.Context, req attendance.EditRequest) (attendance.Record, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to parse date: %w", err)
	}
	day = daterange.Day(day)

	conflict, err := s.schedules.CheckConflicts(ctx, req.EmployeeID, day, day, status.ConflictAttendance)
	if err != nil {
		return attendance.Record{}, err
	}
	if conflict != nil {
		return attendance.Record{}, &status.ConflictError{Conflict: *conflict}
	}

	rec := attendance.Record{
		EmployeeID: req.EmployeeID,
		Date:       day,
		IsManual:   true,
	}
	if existing, err := s.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, day); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	} else if existing != nil {
		rec.CheckIn = existing.CheckIn
		rec.CheckOut = existing.CheckOut
		rec.IsBusinessTrip = existing.IsBusinessTrip
	}

	if req.CheckIn != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to parse check_in: %w", err)
		}
		rec.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		rec.CheckOut = &t
	}
	if rec.CheckIn != nil && rec.CheckOut != nil && rec.CheckOut.Before(*rec.CheckIn) {
		return attendance.Record{}, fmt.Errorf("check-out precedes check-in")
	}

	if rec.CheckIn != nil {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
		}
		sched, err := s.schedules.EffectiveSchedule(ctx, emp)
		if err != nil {
			return attendance.Record{}, err
		}
		lateness, err := s.detector.EvaluateLateness(sched, *rec.CheckIn)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to evaluate lateness: %w", err)
		}
		rec.IsLate = lateness.IsLate
		rec.LateMinutes = lateness.LateMinutes
	}

	saved, err := s.Repository.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	return saved, nil
}

func (s *Service) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	records, err := s.Repository.ListByEmployeeRange(ctx, employeeID, daterange.Day(from), daterange.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}
