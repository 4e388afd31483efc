package frame

import (
	"context"
	"time"
)

// DefaultInterval approximates a 60Hz display refresh.
const DefaultInterval = 16 * time.Millisecond

// Loop is the single control goroutine for a view. Input handlers are posted
// to it and frames are flushed on a ticker, so every mutation of gesture
// state happens on one goroutine without locks.
//
// Schedule and Cancel must only be called from inside the loop, that is from
// a posted handler or a frame callback.
type Loop struct {
	queue    *Queue
	interval time.Duration
	posts    chan func()
	frames   int
}

// NewLoop creates a loop that flushes frames every interval.
// A non-positive interval falls back to DefaultInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		queue:    NewQueue(),
		interval: interval,
		posts:    make(chan func(), 64),
	}
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(cb Callback) Handle {
	return l.queue.Schedule(cb)
}

// Cancel implements Scheduler.
func (l *Loop) Cancel(h Handle) {
	l.queue.Cancel(h)
}

// Pending returns the number of scheduled callbacks. Loop goroutine only.
func (l *Loop) Pending() int {
	return l.queue.Pending()
}

// Frames returns how many frames have been flushed. Loop goroutine only.
func (l *Loop) Frames() int {
	return l.frames
}

// Post queues fn to run on the loop goroutine. It blocks while the post
// buffer is full and gives up when ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.posts <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the loop until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			l.queue.Flush(now)
			l.frames++
		}
	}
}
