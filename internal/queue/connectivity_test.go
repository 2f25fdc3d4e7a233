package queue

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcherQueue(t *testing.T) (*Queue, *atomic.Int32, Processor) {
	t.Helper()
	q := New(&memStore{}, events.NewHub(), 3)
	var processed atomic.Int32
	proc := ProcessorFunc(func(context.Context, domain.Operation) error {
		processed.Add(1)
		return nil
	})
	return q, &processed, proc
}

func TestWatcherDrainsAfterSettleDelay(t *testing.T) {
	q, processed, proc := newWatcherQueue(t)
	_, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)

	w := NewWatcher(q, proc, 20*time.Millisecond, slog.Default())
	defer w.Close()

	w.NotifyOnline()
	assert.True(t, w.Online())

	assert.Eventually(t, func() bool {
		return processed.Load() == 1 && q.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestWatcherOfflineCancelsPendingDrain(t *testing.T) {
	q, processed, proc := newWatcherQueue(t)
	_, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)

	w := NewWatcher(q, proc, 20*time.Millisecond, slog.Default())
	defer w.Close()

	w.NotifyOnline()
	w.NotifyOffline()
	assert.False(t, w.Online())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), processed.Load())
	assert.Equal(t, 1, q.Len())
}

func TestWatcherDebouncesFlappingLink(t *testing.T) {
	q, processed, proc := newWatcherQueue(t)
	_, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)

	w := NewWatcher(q, proc, 40*time.Millisecond, slog.Default())
	defer w.Close()

	// Repeated notifications inside the window keep pushing the drain out.
	for i := 0; i < 3; i++ {
		w.NotifyOnline()
		time.Sleep(15 * time.Millisecond)
		assert.Equal(t, int32(0), processed.Load())
	}

	assert.Eventually(t, func() bool {
		return processed.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestTriggerDrainBypassesDelayAndOnlineGate(t *testing.T) {
	q, processed, proc := newWatcherQueue(t)
	_, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)

	w := NewWatcher(q, proc, time.Hour, slog.Default())
	defer w.Close()

	// Never notified online: the manual trigger must still drain.
	w.TriggerDrain()

	assert.Eventually(t, func() bool {
		return processed.Load() == 1 && q.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestTriggerDrainAfterCloseIsNoop(t *testing.T) {
	q, processed, proc := newWatcherQueue(t)
	_, err := q.Enqueue(domain.OpAttendanceCheckIn, []byte(`{}`))
	require.NoError(t, err)

	w := NewWatcher(q, proc, 50*time.Millisecond, slog.Default())
	w.NotifyOnline()
	w.Close()

	w.TriggerDrain()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), processed.Load())
	assert.Equal(t, 1, q.Len())
}
