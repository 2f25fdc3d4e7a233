package status

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/employee"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/holiday"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

// Resolver merges the five overlapping record sources into one authoritative
// per-day status. Precedence, highest first:
//
//	NotYetHired > SickLeave > BusinessTrip > OnLeave > Present > NonWorkingDay > Absent
type Resolver struct {
	employee.Repository
	scheduleRepo schedule.Repository
	tripRepo     trip.Repository
	leaveRepo    leave.RequestRepository
	sickRepo     sickleave.Repository
	holidayRepo  holiday.Repository
	attRepo      attendance.Repository
}

func NewResolver(
	employeeRepo employee.Repository,
	scheduleRepo schedule.Repository,
	tripRepo trip.Repository,
	leaveRepo leave.RequestRepository,
	sickRepo sickleave.Repository,
	holidayRepo holiday.Repository,
	attRepo attendance.Repository,
) *Resolver {
	return &Resolver{
		Repository:   employeeRepo,
		scheduleRepo: scheduleRepo,
		tripRepo:     tripRepo,
		leaveRepo:    leaveRepo,
		sickRepo:     sickRepo,
		holidayRepo:  holidayRepo,
		attRepo:      attRepo,
	}
}

// ResolveDayStatus answers the single authoritative status of one employee
// on one calendar day.
func (r *Resolver) ResolveDayStatus(ctx context.Context, employeeID string, date time.Time) (status.DayStatus, error) {
	day := daterange.Day(date)

	emp, err := r.Repository.GetByID(ctx, employeeID)
	if err != nil {
		return status.DayStatus{}, fmt.Errorf("failed to get employee: %w", err)
	}

	result := status.DayStatus{
		EmployeeID: employeeID,
		Date:       day,
	}

	// 1. Not yet hired: day granularity, the hire date itself is tracked.
	if emp.TrackingStartType == employee.TrackingFromHireDate && daterange.BeforeDay(day, emp.HireDate) {
		result.Kind = status.KindNotYetHired
		result.Description = fmt.Sprintf("hired on %s", emp.HireDate.Format("2006-01-02"))
		return result, nil
	}

	// 2. Sick leave: always authoritative, no approval gate.
	sickLeaves, err := r.sickRepo.ListOverlapping(ctx, employeeID, day, day)
	if err != nil {
		return status.DayStatus{}, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	if len(sickLeaves) > 0 {
		sl := sickLeaves[0]
		result.Kind = status.KindSickLeave
		result.Description = fmt.Sprintf("sick leave %s..%s",
			sl.StartDate.Format("2006-01-02"), sl.EndDate.Format("2006-01-02"))
		result.RecordID = &sl.ID
		return result, nil
	}

	// 3. Approved business trip.
	trips, err := r.tripRepo.ListApprovedOverlapping(ctx, employeeID, day, day)
	if err != nil {
		return status.DayStatus{}, fmt.Errorf("failed to list business trips: %w", err)
	}
	if len(trips) > 0 {
		t := trips[0]
		result.Kind = status.KindBusinessTrip
		result.Description = fmt.Sprintf("business trip %s..%s",
			t.DateFrom.Format("2006-01-02"), t.DateTo.Format("2006-01-02"))
		result.RecordID = &t.ID
		return result, nil
	}

	// 4. Approved leave. A ferie range or a full-day permesso decides the
	// day; a time-windowed permesso is informational only and does not change
	// the day status by itself.
	leaves, err := r.leaveRepo.ListApprovedOverlapping(ctx, employeeID, day, day)
	if err != nil {
		return status.DayStatus{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	for i := range leaves {
		lr := leaves[i]
		if lr.Type == leave.TypeFerie || lr.IsFullDayPermesso() {
			result.Kind = status.KindOnLeave
			result.Description = leaveDescription(lr)
			result.RecordID = &lr.ID
			return result, nil
		}
		// Time-windowed permesso: remember it, keep resolving.
		window := fmt.Sprintf("%s-%s", deref(lr.TimeFrom), deref(lr.TimeTo))
		result.PermissionWindow = &window
	}

	// 5. Present: any attendance record with a check-in.
	att, err := r.attRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return status.DayStatus{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if att != nil && att.CheckIn != nil {
		result.Kind = status.KindPresent
		result.Description = fmt.Sprintf("checked in at %s", att.CheckIn.Format("15:04"))
		result.RecordID = &att.ID
		return result, nil
	}

	// 6. Non-working day: company holiday, or the effective weekly schedule
	// marks this weekday off.
	isHoliday, holidayName, err := r.isHoliday(ctx, day)
	if err != nil {
		return status.DayStatus{}, err
	}
	if isHoliday {
		result.Kind = status.KindNonWorkingDay
		result.Description = holidayName
		return result, nil
	}

	sched, err := r.EffectiveSchedule(ctx, emp)
	if err != nil {
		return status.DayStatus{}, err
	}
	if !sched.WorksOn(day.Weekday()) {
		result.Kind = status.KindNonWorkingDay
		result.Description = fmt.Sprintf("%s is not a working day", day.Weekday())
		return result, nil
	}

	// 7. Default.
	result.Kind = status.KindAbsent
	return result, nil
}

// ResolveRange resolves every day in [from, to] inclusive, in order.
func (r *Resolver) ResolveRange(ctx context.Context, employeeID string, from, to time.Time) ([]status.DayStatus, error) {
	from, to = daterange.Day(from), daterange.Day(to)
	if from.After(to) {
		return nil, fmt.Errorf("invalid range: %s after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	var statuses []status.DayStatus
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		st, err := r.ResolveDayStatus(ctx, employeeID, d)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

// EffectiveSchedule returns the employee's override schedule when one
// exists, else the company-wide schedule.
func (r *Resolver) EffectiveSchedule(ctx context.Context, emp employee.Employee) (schedule.WorkSchedule, error) {
	if emp.WorkScheduleID != nil {
		sched, err := r.scheduleRepo.GetByEmployeeID(ctx, emp.ID)
		if err == nil && sched.StartTime != "" {
			return sched, nil
		}
		// Fall through to the company schedule on a missing or incomplete
		// override.
	}

	sched, err := r.scheduleRepo.GetCompanySchedule(ctx)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}
	return sched, nil
}

func (r *Resolver) isHoliday(ctx context.Context, day time.Time) (bool, string, error) {
	holidays, err := r.holidayRepo.List(ctx)
	if err != nil {
		return false, "", fmt.Errorf("failed to list holidays: %w", err)
	}

	for _, h := range holidays {
		if h.Matches(day) {
			return true, h.Name, nil
		}
	}
	return false, "", nil
}

func leaveDescription(lr leave.Request) string {
	if lr.Type == leave.TypeFerie {
		return fmt.Sprintf("ferie %s..%s",
			lr.DateFrom.Format("2006-01-02"), lr.DateTo.Format("2006-01-02"))
	}
	return fmt.Sprintf("permesso on %s", lr.DateFrom.Format("2006-01-02"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
