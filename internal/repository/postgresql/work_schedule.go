package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/schedule"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.Repository {
	return &workScheduleRepository{db: db}
}

const workScheduleColumns = `
	id, employee_id, name,
	monday, tuesday, wednesday, thursday, friday, saturday, sunday,
	start_time, end_time, tolerance_minutes,
	created_at, updated_at
`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var s schedule.WorkSchedule
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Name,
		&s.Monday, &s.Tuesday, &s.Wednesday, &s.Thursday, &s.Friday, &s.Saturday, &s.Sunday,
		&s.StartTime, &s.EndTime, &s.ToleranceMinutes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetCompanySchedule implements schedule.Repository.
func (r *workScheduleRepository) GetCompanySchedule(ctx context.Context) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE employee_id IS NULL
		ORDER BY created_at
		LIMIT 1
	`

	s, err := scanWorkSchedule(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrNoCompanySchedule
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get company schedule: %w", err)
	}

	return s, nil
}

// GetByEmployeeID implements schedule.Repository.
func (r *workScheduleRepository) GetByEmployeeID(ctx context.Context, employeeID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE employee_id = $1
		LIMIT 1
	`

	s, err := scanWorkSchedule(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get employee schedule: %w", err)
	}

	return s, nil
}

// Create implements schedule.Repository.
func (r *workScheduleRepository) Create(ctx context.Context, sched schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (
			employee_id, name,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			start_time, end_time, tolerance_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sched.EmployeeID, sched.Name,
		sched.Monday, sched.Tuesday, sched.Wednesday, sched.Thursday,
		sched.Friday, sched.Saturday, sched.Sunday,
		sched.StartTime, sched.EndTime, sched.ToleranceMinutes,
	).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)

	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return sched, nil
}

// Update implements schedule.Repository.
func (r *workScheduleRepository) Update(ctx context.Context, sched schedule.WorkSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedules
		SET name = $1,
		    monday = $2, tuesday = $3, wednesday = $4, thursday = $5,
		    friday = $6, saturday = $7, sunday = $8,
		    start_time = $9, end_time = $10, tolerance_minutes = $11,
		    updated_at = NOW()
		WHERE id = $12
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		sched.Name,
		sched.Monday, sched.Tuesday, sched.Wednesday, sched.Thursday,
		sched.Friday, sched.Saturday, sched.Sunday,
		sched.StartTime, sched.EndTime, sched.ToleranceMinutes,
		sched.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to update work schedule: %w", err)
	}

	return nil
}
