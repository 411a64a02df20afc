package tick

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Hook runs on the tick goroutine before deferred tasks of that boundary.
type Hook func(tick uint64)

// Queue — очередь отложенных задач: задача, добавленная во время тика N,
// выполняется ровно один раз на границе после тика N. Отмены нет.
//
// Thread-safety: AddTask may be called from the UI goroutine while the tick
// loop drains the queue.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	tick    uint64
	hooks   []Hook

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewQueue creates an empty queue. Call Start or drive it with Advance.
func NewQueue() *Queue {
	return &Queue{
		pending: make([]func(), 0, 8),
		stopCh:  make(chan struct{}),
	}
}

// AddTask schedules fn to run once at the next tick boundary. Nil is ignored.
func (q *Queue) AddTask(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// OnTick registers a hook called at every boundary.
func (q *Queue) OnTick(h Hook) {
	q.mu.Lock()
	q.hooks = append(q.hooks, h)
	q.mu.Unlock()
}

// Advance closes the current tick: runs hooks, then every task enqueued
// before this call, in FIFO order. Tasks enqueued by running tasks wait for
// the next boundary. Returns the number of tasks run.
func (q *Queue) Advance() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make([]func(), 0, cap(batch))
	q.tick++
	n := q.tick
	hooks := append([]Hook(nil), q.hooks...)
	q.mu.Unlock()

	for _, h := range hooks {
		h(n)
	}
	for _, fn := range batch {
		q.run(fn)
	}

	if len(batch) > 0 {
		slog.Debug("deferred tasks executed", "tick", n, "count", len(batch))
	}
	return len(batch)
}

// run executes one task; a panicking task is logged and does not stop the loop.
func (q *Queue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("deferred task panicked", "panic", r)
		}
	}()
	fn()
}

// Pending returns the number of tasks waiting for the next boundary.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Tick returns the number of boundaries passed.
func (q *Queue) Tick() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tick
}

// Start advances the queue every interval (blocks until ctx is canceled or Stop is called).
func (q *Queue) Start(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("tick loop started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick loop stopping")
			return ctx.Err()

		case <-q.stopCh:
			slog.Info("tick loop stopped")
			return nil

		case <-ticker.C:
			q.Advance()
		}
	}
}

// Stop terminates Start. Safe to call more than once.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() { close(q.stopCh) })
}
