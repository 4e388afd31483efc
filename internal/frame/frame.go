// Package frame provides the "run before the next repaint" primitive used by
// the gesture components.
//
// All gesture state is owned by a single control goroutine. Components never
// block; they schedule a callback for the next frame and resume there. A
// component that schedules a repeating loop keeps exactly one Handle and
// clears it once the callback fires or is canceled.
package frame

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued and
// is used by callers to mean "nothing scheduled".
type Handle uint64

// Callback receives the frame timestamp it runs in.
type Callback func(now time.Time)

// Scheduler runs a callback exactly once before the next display refresh,
// unless it is canceled first. Canceling an unknown or already-fired handle
// is a no-op.
type Scheduler interface {
	Schedule(cb Callback) Handle
	Cancel(h Handle)
}

// Queue is the pending-handle bookkeeping behind a Scheduler. It is not safe
// for concurrent use; the owner drives it with Flush once per frame.
type Queue struct {
	next    Handle
	order   []Handle
	pending map[Handle]Callback
}

// NewQueue creates an empty frame queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]Callback)}
}

// Schedule registers cb for the next Flush.
func (q *Queue) Schedule(cb Callback) Handle {
	q.next++
	h := q.next
	q.pending[h] = cb
	q.order = append(q.order, h)
	return h
}

// Cancel drops a pending callback.
func (q *Queue) Cancel(h Handle) {
	delete(q.pending, h)
}

// Pending returns the number of callbacks waiting for a frame.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Flush runs, in schedule order, every callback that was pending when the
// flush began. Callbacks scheduled while flushing wait for the next frame,
// and a callback canceled by an earlier one in the same frame does not run.
// It returns the number of callbacks that ran.
func (q *Queue) Flush(now time.Time) int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, h := range batch {
		cb, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		cb(now)
		ran++
	}
	return ran
}
