package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ImageWarmer fetches an image into the local cache.
type ImageWarmer interface {
	Warm(ctx context.Context, imageURL string) error
}

// WarmImageTask caches one image ahead of the viewer needing it.
type WarmImageTask struct {
	URL string `json:"url"`
}

// Config returns the queue configuration for image warm-up tasks.
func (t WarmImageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "warm_image",
		MaxAttempts: 2,
		Backoff:     5 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: true,
		},
	}
}

// WarmImageProcessor creates a processor function for WarmImageTask.
func WarmImageProcessor(warmer ImageWarmer) backlite.QueueProcessor[WarmImageTask] {
	return func(ctx context.Context, task WarmImageTask) error {
		if warmer == nil {
			return fmt.Errorf("image warmer not configured")
		}

		if err := warmer.Warm(ctx, task.URL); err != nil {
			return fmt.Errorf("warm image %s: %w", task.URL, err)
		}

		log.Printf("[TASK] Warmed image %s", task.URL)
		return nil
	}
}

// NewWarmImageQueue creates a backlite queue for image warm-up tasks.
func NewWarmImageQueue(warmer ImageWarmer) backlite.Queue {
	return backlite.NewQueue(WarmImageProcessor(warmer))
}
