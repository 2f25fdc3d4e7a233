// Package master manages the reference data the day-status resolution leans
// on: employees, work schedules and holidays.
package master

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/employee"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/holiday"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/daterange"
)

type Service struct {
	employeeRepo employee.Repository
	scheduleRepo schedule.Repository
	holidayRepo  holiday.Repository
}

func NewService(employeeRepo employee.Repository, scheduleRepo schedule.Repository, holidayRepo holiday.Repository) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
	}
}

func (s *Service) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to parse hire_date: %w", err)
	}

	emp := employee.Employee{
		FullName:          req.FullName,
		Email:             req.Email,
		HireDate:          daterange.Day(hireDate),
		TrackingStartType: employee.TrackingStartType(req.TrackingStartType),
		WorkScheduleID:    req.WorkScheduleID,
		IsActive:          true,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to parse hire_date: %w", err)
		}
		emp.HireDate = daterange.Day(hireDate)
	}
	if req.TrackingStartType != nil {
		emp.TrackingStartType = employee.TrackingStartType(*req.TrackingStartType)
	}
	if req.WorkScheduleID != nil {
		emp.WorkScheduleID = req.WorkScheduleID
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *Service) CreateSchedule(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.WorkSchedule, error) {
	sched := schedule.WorkSchedule{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,

		Monday:    req.Monday,
		Tuesday:   req.Tuesday,
		Wednesday: req.Wednesday,
		Thursday:  req.Thursday,
		Friday:    req.Friday,
		Saturday:  req.Saturday,
		Sunday:    req.Sunday,

		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ToleranceMinutes: req.ToleranceMinutes,
	}

	if err := validateSchedule(sched); err != nil {
		return schedule.WorkSchedule{}, err
	}

	created, err := s.scheduleRepo.Create(ctx, sched)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return created, nil
}

func (s *Service) ListHolidays(ctx context.Context) ([]holiday.Holiday, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

func (s *Service) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	h := holiday.Holiday{
		Name:      req.Name,
		Recurring: req.Recurring,
		Month:     req.Month,
		Day:       req.Day,
	}
	if !req.Recurring {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return holiday.Holiday{}, fmt.Errorf("failed to parse date: %w", err)
		}
		h.Date = daterange.Day(date)
		h.Month, h.Day = 0, 0
	}

	created, err := s.holidayRepo.Create(ctx, h)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return created, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

func validateSchedule(sched schedule.WorkSchedule) error {
	start, err := time.Parse("15:04", sched.StartTime)
	if err != nil {
		return schedule.ErrInvalidStartTime
	}
	end, err := time.Parse("15:04", sched.EndTime)
	if err != nil {
		return schedule.ErrInvalidTimeWindow
	}
	if !end.After(start) {
		return schedule.ErrInvalidTimeWindow
	}

	if !(sched.Monday || sched.Tuesday || sched.Wednesday || sched.Thursday ||
		sched.Friday || sched.Saturday || sched.Sunday) {
		return schedule.ErrNoWorkingDaySet
	}

	return nil
}
