package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// GetByEmployeeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year,
		       vacation_days_total, vacation_days_used,
		       permission_hours_total, permission_hours_used,
		       created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	var bal leave.Balance
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&bal.ID, &bal.EmployeeID, &bal.Year,
		&bal.VacationDaysTotal, &bal.VacationDaysUsed,
		&bal.PermissionHoursTotal, &bal.PermissionHoursUsed,
		&bal.CreatedAt, &bal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return bal, nil
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Create(ctx context.Context, bal leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, year,
			vacation_days_total, vacation_days_used,
			permission_hours_total, permission_hours_used
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		bal.EmployeeID, bal.Year,
		bal.VacationDaysTotal, bal.VacationDaysUsed,
		bal.PermissionHoursTotal, bal.PermissionHoursUsed,
	).Scan(&bal.ID, &bal.CreatedAt, &bal.UpdatedAt)

	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return bal, nil
}

// AddUsed implements leave.BalanceRepository. The increment happens in SQL
// so concurrent approvals rely on the database's row-level atomicity rather
// than read-modify-write in Go.
func (r *leaveBalanceRepository) AddUsed(ctx context.Context, employeeID string, year int, vacationDays, permissionHours decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET vacation_days_used = vacation_days_used + $1,
		    permission_hours_used = permission_hours_used + $2,
		    updated_at = NOW()
		WHERE employee_id = $3 AND year = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, vacationDays, permissionHours, employeeID, year).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to add leave balance usage: %w", err)
	}

	return nil
}
