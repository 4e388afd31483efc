package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/photoalbum/internal/entities"
	"github.com/mrlokans/photoalbum/internal/imagecache"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/swipe"
)

// PhotoCatalog provides read access to mirrored album listings.
type PhotoCatalog interface {
	Photos(albumID string, key entities.SortKey, order entities.SortOrder) ([]entities.Photo, error)
	GetPhoto(id string) (*entities.Photo, error)
	Sequence(albumID string, key entities.SortKey, order entities.SortOrder) (photos.List, error)
}

// CatalogHealth is what the health check needs from the catalog.
type CatalogHealth interface {
	Ping() error
	GetSyncProgress(syncType entities.SyncType) (*entities.SyncProgress, error)
}

// ImageStore returns locally cached images, fetching on a miss.
type ImageStore interface {
	Get(ctx context.Context, imageURL string) (*imagecache.Entry, error)
}

// TaskEnqueuer saves background tasks.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog       PhotoCatalog
	CatalogHealth CatalogHealth
	Resolver      photos.Resolver

	// Image caching (optional, images redirect to the origin without it)
	ImageCache ImageStore

	// Task queue client (optional)
	TaskClient TaskEnqueuer

	// Preloader warms the photos around the one being viewed (optional)
	Preloader     swipe.Preloader
	PreloadRadius int

	// Application info
	Version string
}
