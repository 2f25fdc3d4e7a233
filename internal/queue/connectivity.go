package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Watcher triggers a queue drain when connectivity to the remote store
// comes back. Restore notifications are debounced: the drain starts only
// after the connection has stayed up for the settle delay, so a flapping
// link does not fire drain after drain.
type Watcher struct {
	queue       *Queue
	processor   Processor
	settleDelay time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	online bool
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWatcher(q *Queue, processor Processor, settleDelay time.Duration, logger *slog.Logger) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		queue:       q,
		processor:   processor,
		settleDelay: settleDelay,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// NotifyOnline records a connectivity restore and (re)arms the settle
// timer. Repeated notifications inside the window push the drain out.
func (w *Watcher) NotifyOnline() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.online = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settleDelay, w.fire)
}

// NotifyOffline cancels any pending drain trigger.
func (w *Watcher) NotifyOffline() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.online = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Online reports the last notified connectivity state.
func (w *Watcher) Online() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.online
}

// TriggerDrain starts a drain immediately, bypassing the settle delay and
// the online gate. Used by the manual drain endpoint and the periodic
// fallback; the drain itself fails fast when the store is unreachable.
func (w *Watcher) TriggerDrain() {
	w.start()
}

// fire runs when the settle timer expires. A link that went back down
// inside the window skips the drain.
func (w *Watcher) fire() {
	w.mu.Lock()
	online := w.online
	w.mu.Unlock()
	if !online {
		return
	}
	w.start()
}

// start launches the drain goroutine. The waitgroup add happens under the
// same lock Close takes, so a timer firing during shutdown cannot add after
// the final Wait has begun.
func (w *Watcher) start() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		if err := w.queue.Drain(w.ctx, w.processor); err != nil {
			w.logger.Error("queue drain failed", "error", err)
		}
	}()
}

// Close stops pending triggers and waits for a running drain to return.
func (w *Watcher) Close() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}
