package tasks

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
)

const enqueueTimeout = 5 * time.Second

// Enqueuer saves tasks to a queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// QueuePreloader turns viewer preload requests into image warm-up tasks.
// Preload returns immediately; enqueue failures are logged and dropped.
type QueuePreloader struct {
	enqueuer Enqueuer
	wg       sync.WaitGroup
}

// NewQueuePreloader creates a preloader that enqueues into enqueuer.
func NewQueuePreloader(enqueuer Enqueuer) *QueuePreloader {
	return &QueuePreloader{enqueuer: enqueuer}
}

// Preload enqueues one WarmImageTask per URL.
func (p *QueuePreloader) Preload(urls []string) {
	if len(urls) == 0 {
		return
	}

	batch := make([]backlite.Task, len(urls))
	for i, u := range urls {
		batch[i] = WarmImageTask{URL: u}
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
		defer cancel()

		if _, err := p.enqueuer.Enqueue(ctx, batch...); err != nil {
			log.Printf("[TASK ERROR] Failed to enqueue %d image warm-ups: %v", len(batch), err)
		}
	}()
}

// Wait blocks until all pending enqueues have finished.
func (p *QueuePreloader) Wait() {
	p.wg.Wait()
}
