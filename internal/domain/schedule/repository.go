package schedule

import "context"

type Repository interface {
	// GetCompanySchedule returns the company-wide fallback schedule.
	GetCompanySchedule(ctx context.Context) (WorkSchedule, error)

	// GetByEmployeeID returns the employee's override schedule, or
	// ErrScheduleNotFound when the employee has none.
	GetByEmployeeID(ctx context.Context, employeeID string) (WorkSchedule, error)

	Create(ctx context.Context, sched WorkSchedule) (WorkSchedule, error)
	Update(ctx context.Context, sched WorkSchedule) error
}
