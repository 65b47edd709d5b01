// queue.go implements a bounded blocking FIFO of owned items.

// Package queue provides a bounded, lockable FIFO which hands items over
// between a producer and a consumer goroutine.
//
// The queue owns the items it holds: once Enqueue succeeds the item belongs
// to the queue until it is returned by Dequeue (the ownership moves to the
// caller) or discarded by Clear (the item is disposed).
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/avsync/internal"
	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

type Queue[T any] struct {
	locker       xsync.Mutex
	items        []*T
	minSize      uint
	maxSize      uint
	dispose      func(*T)
	pollInterval time.Duration

	// isLocked is changed only with the locker held, but is read without it.
	isLocked   atomic.Bool
	changeChan *chan struct{}

	counters counters
}

// New returns a queue holding at most max(minSize, maxSize) items.
// A queue with zero capacity rejects every Enqueue and Dequeue.
func New[T any](
	minSize uint,
	maxSize uint,
	opts ...Option[T],
) *Queue[T] {
	cfg := Options[T](opts).config()
	q := &Queue[T]{
		minSize:      minSize,
		maxSize:      max(minSize, maxSize),
		dispose:      cfg.DisposeCallback,
		pollInterval: cfg.PollInterval,
		changeChan:   ptr(make(chan struct{})),
	}
	internal.SetFinalizerClose(context.Background(), q)
	return q
}

func (q *Queue[T]) String() string {
	return fmt.Sprintf("Queue[%T](%p)", (*T)(nil), q)
}

// notify wakes up everybody waiting on the queue.
func (q *Queue[T]) notify() {
	close(*xatomic.SwapPointer(&q.changeChan, ptr(make(chan struct{}))))
}

func (q *Queue[T]) getChangeChan() <-chan struct{} {
	return *xatomic.LoadPointer(&q.changeChan)
}

func (q *Queue[T]) SetLimit(
	ctx context.Context,
	minSize uint,
	maxSize uint,
) {
	q.locker.Do(ctx, func() {
		logger.Debugf(ctx, "%s: SetLimit(%d, %d); was: %d, %d", q, minSize, maxSize, q.minSize, q.maxSize)
		q.minSize = minSize
		q.maxSize = max(minSize, maxSize)
		q.notify()
	})
}

// Limits returns the configured minimal and maximal sizes.
func (q *Queue[T]) Limits(ctx context.Context) (uint, uint) {
	return xsync.DoR2(ctx, &q.locker, func() (uint, uint) {
		return q.minSize, q.maxSize
	})
}

// SetDisposeCallback replaces the function used to release discarded items;
// nil restores the default behavior.
func (q *Queue[T]) SetDisposeCallback(
	ctx context.Context,
	callback func(*T),
) {
	q.locker.Do(ctx, func() {
		q.dispose = callback
	})
}

type attemptResult int

const (
	attemptResultDone = attemptResult(iota)
	attemptResultRejected
	attemptResultWait
)

// Enqueue appends the item, blocking while the queue is full. It returns
// false if the item is nil, the queue has zero capacity, or the queue is
// (or becomes) locked, or ctx is canceled; the caller keeps the ownership
// of the item in this case.
func (q *Queue[T]) Enqueue(
	ctx context.Context,
	item *T,
) (_ret bool) {
	logger.Tracef(ctx, "%s: Enqueue", q)
	defer func() {
		logger.Tracef(ctx, "%s: /Enqueue: %t", q, _ret)
		if !_ret {
			q.counters.Rejected.Inc()
		}
	}()
	if item == nil {
		return false
	}
	lockerCtx := xsync.WithNoLogging(ctx, true)
	for {
		result, changeCh := xsync.DoA1R2(lockerCtx, &q.locker, q.tryEnqueueLocked, item)
		switch result {
		case attemptResultDone:
			return true
		case attemptResultRejected:
			return false
		}
		if !q.wait(ctx, changeCh) {
			return false
		}
	}
}

func (q *Queue[T]) tryEnqueueLocked(item *T) (attemptResult, <-chan struct{}) {
	if q.isLocked.Load() || q.maxSize == 0 {
		return attemptResultRejected, nil
	}
	if uint(len(q.items)) >= q.maxSize {
		return attemptResultWait, q.getChangeChan()
	}
	q.items = append(q.items, item)
	q.counters.Enqueued.Inc()
	q.notify()
	return attemptResultDone, nil
}

// Dequeue removes the oldest item and passes its ownership to the caller,
// blocking while the queue is empty. It returns false if the queue has zero
// capacity, or is (or becomes) locked, or ctx is canceled.
func (q *Queue[T]) Dequeue(
	ctx context.Context,
) (_ret *T, _ok bool) {
	logger.Tracef(ctx, "%s: Dequeue", q)
	defer func() { logger.Tracef(ctx, "%s: /Dequeue: %t", q, _ok) }()
	lockerCtx := xsync.WithNoLogging(ctx, true)
	for {
		var (
			item     *T
			result   attemptResult
			changeCh <-chan struct{}
		)
		q.locker.Do(lockerCtx, func() {
			item, result, changeCh = q.tryDequeueLocked()
		})
		switch result {
		case attemptResultDone:
			return item, true
		case attemptResultRejected:
			return nil, false
		}
		if !q.wait(ctx, changeCh) {
			return nil, false
		}
	}
}

func (q *Queue[T]) tryDequeueLocked() (*T, attemptResult, <-chan struct{}) {
	if q.isLocked.Load() || q.maxSize == 0 {
		return nil, attemptResultRejected, nil
	}
	if len(q.items) == 0 {
		return nil, attemptResultWait, q.getChangeChan()
	}
	item := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	q.counters.Dequeued.Inc()
	q.notify()
	return item, attemptResultDone, nil
}

// wait blocks until the queue changes or the poll interval passes;
// it returns false if the caller should give up.
func (q *Queue[T]) wait(
	ctx context.Context,
	changeCh <-chan struct{},
) bool {
	q.counters.Waits.Inc()
	t := time.NewTimer(q.pollInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		logger.Debugf(ctx, "%s: wait: %v", q, ctx.Err())
		return false
	case <-changeCh:
	case <-t.C:
	}
	return !q.isLocked.Load()
}

func (q *Queue[T]) Size(ctx context.Context) uint {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &q.locker, func() uint {
		return uint(len(q.items))
	})
}

func (q *Queue[T]) Empty(ctx context.Context) bool {
	return q.Size(ctx) == 0
}

func (q *Queue[T]) Full(ctx context.Context) bool {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &q.locker, func() bool {
		return q.maxSize > 0 && uint(len(q.items)) >= q.maxSize
	})
}

// Wake releases every blocked Enqueue and Dequeue for a re-check.
func (q *Queue[T]) Wake(ctx context.Context) {
	q.locker.Do(ctx, func() {
		q.notify()
	})
}

// Lock makes every current and future Enqueue and Dequeue fail until Unlock.
func (q *Queue[T]) Lock(ctx context.Context) {
	q.setLocked(ctx, true)
}

func (q *Queue[T]) Unlock(ctx context.Context) {
	q.setLocked(ctx, false)
}

func (q *Queue[T]) setLocked(ctx context.Context, locked bool) {
	q.locker.Do(ctx, func() {
		logger.Debugf(ctx, "%s: locked: %t -> %t", q, q.isLocked.Load(), locked)
		q.isLocked.Store(locked)
		q.notify()
	})
}

func (q *Queue[T]) IsLocked() bool {
	return q.isLocked.Load()
}

// Clear disposes every queued item (via the dispose callback if set) and
// returns how many there were.
func (q *Queue[T]) Clear(ctx context.Context) int {
	items, dispose := xsync.DoR2(ctx, &q.locker, func() ([]*T, func(*T)) {
		items := q.items
		q.items = nil
		q.notify()
		return items, q.dispose
	})
	for _, item := range items {
		if item == nil {
			continue
		}
		if dispose != nil {
			dispose(item)
		} else {
			defaultDispose(ctx, item)
		}
		q.counters.Disposed.Inc()
	}
	if len(items) > 0 {
		logger.Debugf(ctx, "%s: disposed %d items", q, len(items))
	}
	return len(items)
}

// Close locks the queue and disposes the remaining items. The queue may
// be unlocked and reused afterwards.
func (q *Queue[T]) Close(ctx context.Context) {
	q.Lock(ctx)
	q.Clear(ctx)
}

func (q *Queue[T]) GetStats(ctx context.Context) Statistics {
	stats := q.counters.snapshot()
	q.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		stats.Size = uint(len(q.items))
		stats.MaxSize = q.maxSize
	})
	return stats
}
