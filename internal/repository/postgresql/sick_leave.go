package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
)

type sickLeaveRepository struct {
	db *database.DB
}

func NewSickLeaveRepository(db *database.DB) sickleave.Repository {
	return &sickLeaveRepository{db: db}
}

const sickLeaveColumns = `
	sl.id, sl.employee_id, sl.start_date, sl.end_date, sl.certificate, sl.notes,
	sl.created_at, sl.updated_at,
	e.full_name AS employee_name
`

func scanSickLeave(row pgx.Row) (sickleave.SickLeave, error) {
	var sl sickleave.SickLeave
	err := row.Scan(
		&sl.ID, &sl.EmployeeID, &sl.StartDate, &sl.EndDate, &sl.Certificate, &sl.Notes,
		&sl.CreatedAt, &sl.UpdatedAt,
		&sl.EmployeeName,
	)
	return sl, err
}

// Create implements sickleave.Repository.
func (r *sickLeaveRepository) Create(ctx context.Context, sl sickleave.SickLeave) (sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sick_leaves (employee_id, start_date, end_date, certificate, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sl.EmployeeID, sl.StartDate, sl.EndDate, sl.Certificate, sl.Notes,
	).Scan(&sl.ID, &sl.CreatedAt, &sl.UpdatedAt)

	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to create sick leave: %w", err)
	}

	return sl, nil
}

// GetByID implements sickleave.Repository.
func (r *sickLeaveRepository) GetByID(ctx context.Context, id string) (sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `
		FROM sick_leaves sl
		LEFT JOIN employees e ON e.id = sl.employee_id
		WHERE sl.id = $1
	`

	sl, err := scanSickLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sickleave.SickLeave{}, sickleave.ErrSickLeaveNotFound
		}
		return sickleave.SickLeave{}, fmt.Errorf("failed to get sick leave by ID: %w", err)
	}

	return sl, nil
}

// ListOverlapping implements sickleave.Repository.
func (r *sickLeaveRepository) ListOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `
		FROM sick_leaves sl
		LEFT JOIN employees e ON e.id = sl.employee_id
		WHERE sl.employee_id = $1
		  AND sl.start_date <= $3
		  AND sl.end_date >= $2
		ORDER BY sl.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping sick leaves: %w", err)
	}
	defer rows.Close()

	var leaves []sickleave.SickLeave
	for rows.Next() {
		sl, err := scanSickLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sick leave: %w", err)
		}
		leaves = append(leaves, sl)
	}

	return leaves, nil
}

// ListByEmployee implements sickleave.Repository.
func (r *sickLeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `
		FROM sick_leaves sl
		LEFT JOIN employees e ON e.id = sl.employee_id
		WHERE sl.employee_id = $1
		ORDER BY sl.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sick leaves: %w", err)
	}
	defer rows.Close()

	var leaves []sickleave.SickLeave
	for rows.Next() {
		sl, err := scanSickLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sick leave: %w", err)
		}
		leaves = append(leaves, sl)
	}

	return leaves, nil
}

// Delete implements sickleave.Repository.
func (r *sickLeaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM sick_leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sick leave: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return sickleave.ErrSickLeaveNotFound
	}

	return nil
}
