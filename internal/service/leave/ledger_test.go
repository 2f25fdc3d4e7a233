package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBalanceRepo struct {
	balances map[int]leave.Balance
	addCalls []struct {
		days, hours decimal.Decimal
	}
}

func (f *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, _ string, year int) (leave.Balance, error) {
	bal, ok := f.balances[year]
	if !ok {
		// Wrapped like the repository layer wraps its sentinels.
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", leave.ErrBalanceNotFound)
	}
	return bal, nil
}

func (f *fakeBalanceRepo) Create(_ context.Context, bal leave.Balance) (leave.Balance, error) {
	return bal, nil
}

func (f *fakeBalanceRepo) AddUsed(_ context.Context, _ string, _ int, days, hours decimal.Decimal) error {
	f.addCalls = append(f.addCalls, struct{ days, hours decimal.Decimal }{days, hours})
	return nil
}

func newBalance(year int, daysTotal, daysUsed, hoursTotal, hoursUsed int64) leave.Balance {
	return leave.Balance{
		EmployeeID:           "emp-1",
		Year:                 year,
		VacationDaysTotal:    decimal.NewFromInt(daysTotal),
		VacationDaysUsed:     decimal.NewFromInt(daysUsed),
		PermissionHoursTotal: decimal.NewFromInt(hoursTotal),
		PermissionHoursUsed:  decimal.NewFromInt(hoursUsed),
	}
}

func ferieRequest(from, to time.Time) leave.Request {
	return leave.Request{
		EmployeeID: "emp-1",
		Type:       leave.TypeFerie,
		DateFrom:   from,
		DateTo:     to,
	}
}

func permessoRequest(day time.Time, timeFrom, timeTo *string) leave.Request {
	return leave.Request{
		EmployeeID: "emp-1",
		Type:       leave.TypePermesso,
		DateFrom:   day,
		DateTo:     day,
		TimeFrom:   timeFrom,
		TimeTo:     timeTo,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestValidateRequestFerie(t *testing.T) {
	ctx := context.Background()

	t.Run("missing balance row is a hard failure", func(t *testing.T) {
		l := NewLedger(&fakeBalanceRepo{balances: map[int]leave.Balance{}})
		v, err := l.ValidateRequest(ctx, ferieRequest(day(2025, 7, 21), day(2025, 7, 25)))
		require.NoError(t, err)
		assert.False(t, v.HasBalance)
		assert.NotEmpty(t, v.ErrorMessage)
	})

	t.Run("exactly consumes the remainder", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 15, 40, 0),
		}}
		// Mon 21 .. Fri 25 July 2025 = 5 working days, 5 remaining.
		v, err := NewLedger(repo).ValidateRequest(ctx, ferieRequest(day(2025, 7, 21), day(2025, 7, 25)))
		require.NoError(t, err)
		assert.True(t, v.HasBalance)
		assert.False(t, v.ExceedsLimit)
		assert.True(t, v.RequiredVacationDays.Equal(decimal.NewFromInt(5)))
	})

	t.Run("one day over the remainder", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 16, 40, 0),
		}}
		v, err := NewLedger(repo).ValidateRequest(ctx, ferieRequest(day(2025, 7, 21), day(2025, 7, 25)))
		require.NoError(t, err)
		assert.True(t, v.HasBalance)
		assert.True(t, v.ExceedsLimit)
		assert.NotEmpty(t, v.ErrorMessage)
	})

	t.Run("weekend-only range consumes nothing", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 20, 40, 0),
		}}
		// Sat 26 .. Sun 27: zero working days even with zero remaining.
		v, err := NewLedger(repo).ValidateRequest(ctx, ferieRequest(day(2025, 7, 26), day(2025, 7, 27)))
		require.NoError(t, err)
		assert.False(t, v.ExceedsLimit)
		assert.True(t, v.RequiredVacationDays.IsZero())
	})

	t.Run("weekend days inside a range are skipped", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		// Mon 21 July .. Fri 1 Aug spans two weekends: 10 working days.
		v, err := NewLedger(repo).ValidateRequest(ctx, ferieRequest(day(2025, 7, 21), day(2025, 8, 1)))
		require.NoError(t, err)
		assert.True(t, v.RequiredVacationDays.Equal(decimal.NewFromInt(10)))
	})
}

func TestValidateRequestPermesso(t *testing.T) {
	ctx := context.Background()

	t.Run("time window consumes its span", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		v, err := NewLedger(repo).ValidateRequest(ctx,
			permessoRequest(day(2025, 7, 23), strPtr("09:00"), strPtr("12:30")))
		require.NoError(t, err)
		assert.True(t, v.RequiredPermissionHours.Equal(decimal.NewFromFloat(3.5)))
		assert.False(t, v.ExceedsLimit)
	})

	t.Run("no window consumes the flat full day", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 33),
		}}
		v, err := NewLedger(repo).ValidateRequest(ctx, permessoRequest(day(2025, 7, 23), nil, nil))
		require.NoError(t, err)
		assert.True(t, v.RequiredPermissionHours.Equal(decimal.NewFromInt(8)))
		assert.True(t, v.ExceedsLimit)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		_, err := NewLedger(repo).ValidateRequest(ctx,
			permessoRequest(day(2025, 7, 23), strPtr("12:00"), strPtr("09:00")))
		assert.ErrorIs(t, err, leave.ErrInvalidTimeWindow)
	})
}

func TestConsume(t *testing.T) {
	ctx := context.Background()

	t.Run("ferie books working days", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		err := NewLedger(repo).Consume(ctx, ferieRequest(day(2025, 7, 21), day(2025, 7, 27)))
		require.NoError(t, err)
		require.Len(t, repo.addCalls, 1)
		assert.True(t, repo.addCalls[0].days.Equal(decimal.NewFromInt(5)))
		assert.True(t, repo.addCalls[0].hours.IsZero())
	})

	t.Run("permesso books hours", func(t *testing.T) {
		repo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		err := NewLedger(repo).Consume(ctx, permessoRequest(day(2025, 7, 23), strPtr("14:00"), strPtr("16:00")))
		require.NoError(t, err)
		require.Len(t, repo.addCalls, 1)
		assert.True(t, repo.addCalls[0].days.IsZero())
		assert.True(t, repo.addCalls[0].hours.Equal(decimal.NewFromInt(2)))
	})
}
