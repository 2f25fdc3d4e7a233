package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
)

type businessTripRepository struct {
	db *database.DB
}

func NewBusinessTripRepository(db *database.DB) trip.Repository {
	return &businessTripRepository{db: db}
}

const businessTripColumns = `
	bt.id, bt.employee_id, bt.date_from, bt.date_to, bt.destination, bt.reason,
	bt.status, bt.approved_by, bt.approved_at, bt.rejection_reason,
	bt.created_at, bt.updated_at,
	e.full_name AS employee_name
`

func scanBusinessTrip(row pgx.Row) (trip.BusinessTrip, error) {
	var t trip.BusinessTrip
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.DateFrom, &t.DateTo, &t.Destination, &t.Reason,
		&t.Status, &t.ApprovedBy, &t.ApprovedAt, &t.RejectionReason,
		&t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeName,
	)
	return t, err
}

// Create implements trip.Repository.
func (r *businessTripRepository) Create(ctx context.Context, t trip.BusinessTrip) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO business_trips (employee_id, date_from, date_to, destination, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.EmployeeID, t.DateFrom, t.DateTo, t.Destination, t.Reason, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to create business trip: %w", err)
	}

	return t, nil
}

// GetByID implements trip.Repository.
func (r *businessTripRepository) GetByID(ctx context.Context, id string) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + businessTripColumns + `
		FROM business_trips bt
		LEFT JOIN employees e ON e.id = bt.employee_id
		WHERE bt.id = $1
	`

	t, err := scanBusinessTrip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.BusinessTrip{}, trip.ErrTripNotFound
		}
		return trip.BusinessTrip{}, fmt.Errorf("failed to get business trip by ID: %w", err)
	}

	return t, nil
}

// ListApprovedOverlapping implements trip.Repository.
func (r *businessTripRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + businessTripColumns + `
		FROM business_trips bt
		LEFT JOIN employees e ON e.id = bt.employee_id
		WHERE bt.employee_id = $1
		  AND bt.status = 'approved'
		  AND bt.date_from <= $3
		  AND bt.date_to >= $2
		ORDER BY bt.date_from
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping business trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.BusinessTrip
	for rows.Next() {
		t, err := scanBusinessTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, nil
}

// ListByEmployee implements trip.Repository.
func (r *businessTripRepository) ListByEmployee(ctx context.Context, employeeID string, status *trip.Status) ([]trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + businessTripColumns + `
		FROM business_trips bt
		LEFT JOIN employees e ON e.id = bt.employee_id
		WHERE bt.employee_id = $1
	`
	args := []interface{}{employeeID}

	if status != nil {
		query += " AND bt.status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY bt.date_from DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query business trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.BusinessTrip
	for rows.Next() {
		t, err := scanBusinessTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, nil
}

// UpdateStatus implements trip.Repository.
func (r *businessTripRepository) UpdateStatus(ctx context.Context, t trip.BusinessTrip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE business_trips
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		t.Status, t.ApprovedBy, t.ApprovedAt, t.RejectionReason, t.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.ErrTripNotFound
		}
		return fmt.Errorf("failed to update business trip status: %w", err)
	}

	return nil
}
