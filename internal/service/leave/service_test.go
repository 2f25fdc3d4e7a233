package leave

import (
	"context"
	"testing"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/leave"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/status"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	requests      map[string]leave.Request
	statusUpdates int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	r.ID = "req-1"
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) ListApprovedOverlapping(context.Context, string, time.Time, time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListByEmployee(context.Context, string, *leave.RequestStatus) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, r leave.Request) error {
	f.requests[r.ID] = r
	f.statusUpdates++
	return nil
}

type fakeConflictChecker struct {
	conflict *status.Conflict
}

func (f *fakeConflictChecker) CheckConflicts(context.Context, string, time.Time, time.Time, status.ConflictKind) (*status.Conflict, error) {
	return f.conflict, nil
}

func newLeaveService(requestRepo *fakeRequestRepo, balanceRepo *fakeBalanceRepo, conflicts *fakeConflictChecker) *Service {
	return &Service{
		RequestRepository: requestRepo,
		BalanceRepository: balanceRepo,
		ledger:            NewLedger(balanceRepo),
		conflicts:         conflicts,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func pendingFerie(repo *fakeRequestRepo, from, to time.Time) string {
	req := ferieRequest(from, to)
	req.ID = "req-1"
	req.Status = leave.RequestStatusPending
	repo.requests[req.ID] = req
	return req.ID
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{})

		created, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       "ferie",
			DateFrom:   "2025-07-21",
			DateTo:     "2025-07-25",
		})
		require.NoError(t, err)
		assert.Equal(t, leave.RequestStatusPending, created.Status)
		assert.Empty(t, balanceRepo.addCalls)
	})

	t.Run("conflicting record blocks submission", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{
			conflict: &status.Conflict{Kind: status.ConflictBusinessTrip, RecordID: "trip-1"},
		})

		_, err := svc.Submit(ctx, leave.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       "ferie",
			DateFrom:   "2025-07-21",
			DateTo:     "2025-07-25",
		})
		var conflictErr *status.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Empty(t, requestRepo.requests)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 25, 0, 0, 0, 0, time.UTC)

	t.Run("books consumption on pending to approved", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{})
		id := pendingFerie(requestRepo, from, to)

		approved, err := svc.Approve(ctx, id, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, leave.RequestStatusApproved, approved.Status)
		require.Len(t, balanceRepo.addCalls, 1)
		assert.True(t, balanceRepo.addCalls[0].days.Equal(decimal.NewFromInt(5)))
	})

	t.Run("conflict appearing after submission blocks approval", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		// A sick leave was recorded between submission and approval.
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{
			conflict: &status.Conflict{Kind: status.ConflictSickLeave, RecordID: "sick-1"},
		})
		id := pendingFerie(requestRepo, from, to)

		_, err := svc.Approve(ctx, id, "admin-1")
		var conflictErr *status.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, status.ConflictSickLeave, conflictErr.Conflict.Kind)

		// Nothing transitioned, nothing consumed.
		assert.Equal(t, leave.RequestStatusPending, requestRepo.requests[id].Status)
		assert.Zero(t, requestRepo.statusUpdates)
		assert.Empty(t, balanceRepo.addCalls)
	})

	t.Run("already processed request is rejected", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 0, 40, 0),
		}}
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{})
		id := pendingFerie(requestRepo, from, to)

		_, err := svc.Approve(ctx, id, "admin-1")
		require.NoError(t, err)

		_, err = svc.Approve(ctx, id, "admin-1")
		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	})

	t.Run("approval landing after other approvals cannot overdraw", func(t *testing.T) {
		requestRepo := newFakeRequestRepo()
		// 4 of 20 days left; the pending week needs 5.
		balanceRepo := &fakeBalanceRepo{balances: map[int]leave.Balance{
			2025: newBalance(2025, 20, 16, 40, 0),
		}}
		svc := newLeaveService(requestRepo, balanceRepo, &fakeConflictChecker{})
		id := pendingFerie(requestRepo, from, to)

		_, err := svc.Approve(ctx, id, "admin-1")
		assert.ErrorIs(t, err, leave.ErrInsufficientDays)
		assert.Empty(t, balanceRepo.addCalls)
	})
}
