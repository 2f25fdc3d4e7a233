// Package queue implements the durable offline operation queue. Mutations
// performed while the remote store is unreachable are appended here and
// replayed in FIFO order when connectivity returns.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/events"
)

// Topic is the hub topic queue lifecycle signals are published on.
const Topic = "offline-queue"

// Signal names published on Topic.
const (
	SignalAdded      = "operation-added"
	SignalProcessed  = "operation-processed"
	SignalRetrying   = "operation-retrying"
	SignalDropped    = "operation-dropped"
	SignalDrainStart = "drain-started"
	SignalDrainDone  = "drain-finished"
)

// Processor replays one queued operation against the remote store. A nil
// return removes the operation from the queue; an error schedules a retry.
type Processor interface {
	Process(ctx context.Context, op domain.Operation) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, op domain.Operation) error

func (f ProcessorFunc) Process(ctx context.Context, op domain.Operation) error {
	return f(ctx, op)
}

// Queue is the in-memory working copy of the pending operations, persisted
// through a Store after every mutation. The in-memory list is authoritative:
// a Store write failure is logged and the queue carries on, accepting that
// a crash before the next successful write loses the delta.
type Queue struct {
	store      domain.Store
	hub        *events.Hub
	logger     *slog.Logger
	maxRetries int
	backoff    Backoff

	mu  sync.Mutex
	ops []domain.Operation

	// draining makes Drain single-flight: a drain requested while one is
	// running is a no-op, not a queued second pass.
	drainMu  sync.Mutex
	draining bool
}

type Option func(*Queue)

func WithBackoff(b Backoff) Option {
	return func(q *Queue) { q.backoff = b }
}

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) { q.logger = logger }
}

// New loads persisted operations from the store and returns the queue. A
// store read failure starts the queue empty rather than refusing to start.
func New(store domain.Store, hub *events.Hub, maxRetries int, opts ...Option) *Queue {
	q := &Queue{
		store:      store,
		hub:        hub,
		logger:     slog.Default(),
		maxRetries: maxRetries,
		backoff:    NoBackoff{},
	}
	for _, opt := range opts {
		opt(q)
	}

	ops, err := store.Load()
	if err != nil {
		q.logger.Error("failed to load queued operations, starting empty", "error", err)
		ops = nil
	}
	q.ops = ops

	return q
}

// Enqueue appends an operation and publishes the added signal. The assigned
// operation ID is returned.
func (q *Queue) Enqueue(opType domain.OperationType, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", domain.ErrEmptyPayload
	}

	op := domain.Operation{
		ID:        uuid.New().String(),
		Type:      opType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	q.mu.Lock()
	q.ops = append(q.ops, op)
	q.persistLocked()
	pending := len(q.ops)
	q.mu.Unlock()

	q.logger.Info("operation queued", "operation_id", op.ID, "type", op.Type, "pending", pending)
	q.hub.Publish(events.Event{Topic: Topic, Name: SignalAdded, Data: op})

	return op.ID, nil
}

// Len returns the number of pending operations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Pending returns a copy of the pending operations in FIFO order.
func (q *Queue) Pending() []domain.Operation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Operation, len(q.ops))
	copy(out, q.ops)
	return out
}

// Drain replays pending operations in FIFO order, one at a time. Only one
// drain runs at a time; a concurrent call returns immediately. Operations
// enqueued while the drain is running are left for the next one.
//
// A failed operation has its retry count bumped and stays queued; once the
// count reaches the ceiling it is dropped with a signal so the relevant
// employees can be told to re-enter the data. The drain always continues
// with the next operation, whatever happened to the previous one.
func (q *Queue) Drain(ctx context.Context, processor Processor) error {
	q.drainMu.Lock()
	if q.draining {
		q.drainMu.Unlock()
		return nil
	}
	q.draining = true
	q.drainMu.Unlock()

	defer func() {
		q.drainMu.Lock()
		q.draining = false
		q.drainMu.Unlock()
	}()

	snapshot := q.Pending()
	if len(snapshot) == 0 {
		return nil
	}

	q.logger.Info("draining offline queue", "pending", len(snapshot))
	q.hub.Publish(events.Event{Topic: Topic, Name: SignalDrainStart, Data: len(snapshot)})

	for i, op := range snapshot {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("drain interrupted: %w", err)
		}
		if i > 0 {
			if wait := q.backoff.Delay(op.Retries); wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return fmt.Errorf("drain interrupted: %w", ctx.Err())
				}
			}
		}

		err := processor.Process(ctx, op)
		if err == nil {
			q.remove(op.ID)
			q.hub.Publish(events.Event{Topic: Topic, Name: SignalProcessed, Data: op})
			continue
		}

		retries := q.bumpRetries(op.ID)
		if retries < 0 {
			// Removed concurrently; nothing left to retry.
			continue
		}

		if retries >= q.maxRetries {
			q.remove(op.ID)
			q.logger.Warn("operation dropped after retry ceiling",
				"operation_id", op.ID, "type", op.Type, "retries", retries, "error", err)
			op.Retries = retries
			q.hub.Publish(events.Event{Topic: Topic, Name: SignalDropped, Data: op})
			continue
		}

		q.logger.Warn("operation failed, will retry",
			"operation_id", op.ID, "type", op.Type, "retries", retries, "error", err)
		op.Retries = retries
		q.hub.Publish(events.Event{Topic: Topic, Name: SignalRetrying, Data: op})
	}

	remaining := q.Len()
	q.hub.Publish(events.Event{Topic: Topic, Name: SignalDrainDone, Data: remaining})
	q.logger.Info("offline queue drain finished", "remaining", remaining)

	return nil
}

func (q *Queue) remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, op := range q.ops {
		if op.ID == id {
			q.ops = append(q.ops[:i], q.ops[i+1:]...)
			q.persistLocked()
			return
		}
	}
}

// bumpRetries increments and returns the operation's retry count, or -1 when
// the operation is no longer queued.
func (q *Queue) bumpRetries(id string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.ops {
		if q.ops[i].ID == id {
			q.ops[i].Retries++
			q.persistLocked()
			return q.ops[i].Retries
		}
	}
	return -1
}

func (q *Queue) persistLocked() {
	if err := q.store.Save(q.ops); err != nil {
		q.logger.Error("failed to persist offline queue", "error", err, "pending", len(q.ops))
	}
}
