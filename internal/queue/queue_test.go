package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	domain "github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	ops       []domain.Operation
	saveCalls int
	loadErr   error
	saveErr   error
}

func (s *memStore) Load() ([]domain.Operation, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Operation, len(s.ops))
	copy(out, s.ops)
	return out, nil
}

func (s *memStore) Save(ops []domain.Operation) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = make([]domain.Operation, len(ops))
	copy(s.ops, ops)
	s.saveCalls++
	return nil
}

// scriptedProcessor fails each operation ID the scripted number of times,
// then succeeds, recording the order operations were seen in.
type scriptedProcessor struct {
	mu       sync.Mutex
	failures map[string]int
	seen     []string
}

func (p *scriptedProcessor) Process(_ context.Context, op domain.Operation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, op.ID)
	if p.failures[op.ID] > 0 {
		p.failures[op.ID]--
		return errors.New("remote store unreachable")
	}
	return nil
}

func collect(ch chan events.Event) []string {
	var names []string
	for {
		select {
		case ev := <-ch:
			names = append(names, ev.Name)
		default:
			return names
		}
	}
}

func TestEnqueue(t *testing.T) {
	store := &memStore{}
	hub := events.NewHub()
	ch, cleanup := hub.Subscribe(Topic)
	defer cleanup()

	q := New(store, hub, 3)

	id, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{"employee_id":"emp-1"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, []string{SignalAdded}, collect(ch))

	_, err = q.Enqueue(domain.OpOvertime, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyPayload)
	assert.Equal(t, 1, q.Len())
}

func TestNewLoadsPersistedOperations(t *testing.T) {
	store := &memStore{ops: []domain.Operation{
		{ID: "op-1", Type: domain.OpAttendanceCheckIn, Payload: []byte(`{}`)},
		{ID: "op-2", Type: domain.OpLeaveRequest, Payload: []byte(`{}`)},
	}}

	q := New(store, events.NewHub(), 3)
	require.Equal(t, 2, q.Len())
	assert.Equal(t, "op-1", q.Pending()[0].ID)
}

func TestNewStartsEmptyOnLoadFailure(t *testing.T) {
	store := &memStore{loadErr: errors.New("corrupt store")}
	q := New(store, events.NewHub(), 3)
	assert.Equal(t, 0, q.Len())
}

func TestDrainFIFOOrder(t *testing.T) {
	store := &memStore{}
	hub := events.NewHub()
	q := New(store, hub, 3)

	id1, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{"n":1}`))
	require.NoError(t, err)
	id2, err := q.Enqueue(domain.OpAttendanceCheckOut, []byte(`{"n":2}`))
	require.NoError(t, err)
	id3, err := q.Enqueue(domain.OpLeaveRequest, []byte(`{"n":3}`))
	require.NoError(t, err)

	proc := &scriptedProcessor{failures: map[string]int{}}
	require.NoError(t, q.Drain(context.Background(), proc))

	assert.Equal(t, []string{id1, id2, id3}, proc.seen)
	assert.Equal(t, 0, q.Len())
}

func TestDrainRetriesThenSucceeds(t *testing.T) {
	store := &memStore{}
	hub := events.NewHub()
	ch, cleanup := hub.Subscribe(Topic)
	defer cleanup()

	q := New(store, hub, 3)
	id, err := q.Enqueue(domain.OpOvertime, []byte(`{}`))
	require.NoError(t, err)
	collect(ch) // discard the added signal

	// Fails twice, one short of the ceiling, then succeeds.
	proc := &scriptedProcessor{failures: map[string]int{id: 2}}

	require.NoError(t, q.Drain(context.Background(), proc))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Pending()[0].Retries)

	require.NoError(t, q.Drain(context.Background(), proc))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 2, q.Pending()[0].Retries)

	require.NoError(t, q.Drain(context.Background(), proc))
	assert.Equal(t, 0, q.Len())

	names := collect(ch)
	assert.Contains(t, names, SignalRetrying)
	assert.Contains(t, names, SignalProcessed)
	assert.NotContains(t, names, SignalDropped)
}

func TestDrainDropsAtRetryCeiling(t *testing.T) {
	store := &memStore{}
	hub := events.NewHub()
	ch, cleanup := hub.Subscribe(Topic)
	defer cleanup()

	q := New(store, hub, 3)
	id, err := q.Enqueue(domain.OpLeaveRequest, []byte(`{}`))
	require.NoError(t, err)
	collect(ch)

	proc := &scriptedProcessor{failures: map[string]int{id: 10}}

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Drain(context.Background(), proc))
	}

	assert.Equal(t, 0, q.Len())
	assert.Len(t, proc.seen, 3)

	names := collect(ch)
	assert.Contains(t, names, SignalDropped)
	assert.NotContains(t, names, SignalProcessed)
}

func TestDrainContinuesPastFailures(t *testing.T) {
	store := &memStore{}
	q := New(store, events.NewHub(), 3)

	idBad, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)
	idGood, err := q.Enqueue(domain.OpAttendanceCheckOut, []byte(`{}`))
	require.NoError(t, err)

	proc := &scriptedProcessor{failures: map[string]int{idBad: 10}}
	require.NoError(t, q.Drain(context.Background(), proc))

	// The failing operation stays queued, the one behind it went through.
	require.Equal(t, 1, q.Len())
	assert.Equal(t, idBad, q.Pending()[0].ID)
	assert.Equal(t, []string{idBad, idGood}, proc.seen)
}

func TestDrainSingleFlight(t *testing.T) {
	store := &memStore{}
	q := New(store, events.NewHub(), 3)
	_, err := q.Enqueue(domain.OpOvertime, []byte(`{}`))
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := ProcessorFunc(func(context.Context, domain.Operation) error {
		close(started)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- q.Drain(context.Background(), blocking) }()
	<-started

	// Second drain while the first holds the flag: immediate no-op.
	noop := &scriptedProcessor{failures: map[string]int{}}
	require.NoError(t, q.Drain(context.Background(), noop))
	assert.Empty(t, noop.seen)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, q.Len())
}

func TestDrainPersistsAfterEveryMutation(t *testing.T) {
	store := &memStore{}
	q := New(store, events.NewHub(), 3)
	_, err := q.Enqueue(domain.OpLeaveRequest, []byte(`{}`))
	require.NoError(t, err)
	before := store.saveCalls

	proc := &scriptedProcessor{failures: map[string]int{}}
	require.NoError(t, q.Drain(context.Background(), proc))

	assert.Greater(t, store.saveCalls, before)
	assert.Empty(t, store.ops)
}

func TestEnqueueSurvivesSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	q := New(store, events.NewHub(), 3)

	// The in-memory list is authoritative: a persist failure is logged,
	// not returned.
	_, err := q.Enqueue(domain.OpOvertime, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 1, q.Len())
}
