package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/photoalbum/internal/services"
)

// AlbumSyncer refreshes album listings in the catalog.
type AlbumSyncer interface {
	SyncAlbums(ctx context.Context, albumIDs []string) (services.SyncResult, error)
}

// SyncAlbumsTask refreshes the catalog copy of the given albums.
type SyncAlbumsTask struct {
	AlbumIDs []string `json:"album_ids"`
}

// Config returns the queue configuration for album sync tasks.
func (t SyncAlbumsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_albums",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     15 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncAlbumsProcessor creates a processor function for SyncAlbumsTask.
func SyncAlbumsProcessor(syncer AlbumSyncer) backlite.QueueProcessor[SyncAlbumsTask] {
	return func(ctx context.Context, task SyncAlbumsTask) error {
		if syncer == nil {
			return fmt.Errorf("album syncer not configured")
		}

		result, err := syncer.SyncAlbums(ctx, task.AlbumIDs)
		if err != nil {
			return fmt.Errorf("sync albums: %w", err)
		}

		log.Printf("[TASK] Synced %d albums (%d failed), %d photos",
			result.AlbumsProcessed, result.AlbumsFailed, result.PhotosStored)
		return nil
	}
}

// NewSyncAlbumsQueue creates a backlite queue for album sync tasks.
func NewSyncAlbumsQueue(syncer AlbumSyncer) backlite.Queue {
	return backlite.NewQueue(SyncAlbumsProcessor(syncer))
}
