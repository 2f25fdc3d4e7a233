package status

import (
	"context"
	"fmt"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
)

// MonthlySummary aggregates one employee's resolved statuses over a month.
type MonthlySummary struct {
	EmployeeID string             `json:"employee_id"`
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Counts     map[status.Kind]int `json:"counts"`
	Days       []status.DayStatus  `json:"days"`
}

// SummarizeMonth resolves every day of the month and tallies the statuses.
func (r *Resolver) SummarizeMonth(ctx context.Context, employeeID string, year int, month time.Month) (MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	days, err := r.ResolveRange(ctx, employeeID, from, to)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to resolve month: %w", err)
	}

	counts := make(map[status.Kind]int)
	for _, d := range days {
		counts[d.Kind]++
	}

	return MonthlySummary{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
		Counts:     counts,
		Days:       days,
	}, nil
}
