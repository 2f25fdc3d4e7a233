package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.Repository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	id, employee_id, date, minutes, automatic, reason,
	status, approved_by, approved_at, created_at, updated_at
`

func scanOvertime(row pgx.Row) (overtime.Entry, error) {
	var e overtime.Entry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.Minutes, &e.Automatic, &e.Reason,
		&e.Status, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements overtime.Repository.
func (r *overtimeRepository) Create(ctx context.Context, e overtime.Entry) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_entries (employee_id, date, minutes, automatic, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.EmployeeID, e.Date, e.Minutes, e.Automatic, e.Reason, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to create overtime entry: %w", err)
	}

	return e, nil
}

// GetByID implements overtime.Repository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_entries WHERE id = $1`

	e, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Entry{}, overtime.ErrEntryNotFound
		}
		return overtime.Entry{}, fmt.Errorf("failed to get overtime entry by ID: %w", err)
	}

	return e, nil
}

// GetByEmployeeAndDate implements overtime.Repository. A missing entry is
// (nil, nil).
func (r *overtimeRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_entries
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	e, err := scanOvertime(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get overtime by employee and date: %w", err)
	}

	return &e, nil
}

// ListByEmployee implements overtime.Repository.
func (r *overtimeRepository) ListByEmployee(ctx context.Context, employeeID string, status *overtime.Status) ([]overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_entries WHERE employee_id = $1`
	args := []interface{}{employeeID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime entries: %w", err)
	}
	defer rows.Close()

	var entries []overtime.Entry
	for rows.Next() {
		e, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// UpdateStatus implements overtime.Repository.
func (r *overtimeRepository) UpdateStatus(ctx context.Context, e overtime.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_entries
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, e.Status, e.ApprovedBy, e.ApprovedAt, e.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.ErrEntryNotFound
		}
		return fmt.Errorf("failed to update overtime entry status: %w", err)
	}

	return nil
}

// Delete implements overtime.Repository.
func (r *overtimeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtime_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete overtime entry: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return overtime.ErrEntryNotFound
	}

	return nil
}
