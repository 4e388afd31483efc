package services

import (
	"context"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/entities"
)

// PhotoLister lists the photos of an album on the photo service.
type PhotoLister interface {
	ListPhotos(ctx context.Context, albumID string) ([]api.PhotoData, error)
}

// AlbumWriter stores fresh album listings.
type AlbumWriter interface {
	ReplaceAlbumPhotos(albumID string, photos []entities.Photo) error
}

// SyncTracker records catalog refresh progress.
// Use this interface when progress should be visible to other processes.
type SyncTracker interface {
	StartSync(syncType entities.SyncType, totalItems int) error
	UpdateSyncProgress(syncType entities.SyncType, processed, succeeded, failed int, currentItem string) error
	CompleteSync(syncType entities.SyncType, succeeded bool, errorMsg string) error
	IsSyncRunning(syncType entities.SyncType) (bool, error)
}

// Catalog is everything the sync service needs from the local catalog.
type Catalog interface {
	AlbumWriter
	SyncTracker
}

// SyncResult contains the outcome of a catalog refresh.
type SyncResult struct {
	AlbumsProcessed int
	AlbumsFailed    int
	PhotosStored    int
	Errors          []string
}
