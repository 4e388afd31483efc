package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/entities"
)

// ErrSyncInProgress is returned when another refresh is still running.
var ErrSyncInProgress = errors.New("album sync already in progress")

// AlbumSyncService mirrors album listings from the photo service into the
// local catalog.
type AlbumSyncService struct {
	lister  PhotoLister
	catalog Catalog
}

// NewAlbumSyncService creates a new AlbumSyncService.
func NewAlbumSyncService(lister PhotoLister, catalog Catalog) *AlbumSyncService {
	return &AlbumSyncService{
		lister:  lister,
		catalog: catalog,
	}
}

// SyncAlbums refreshes each album in turn. A failing album is recorded and
// skipped; the others are still refreshed.
func (s *AlbumSyncService) SyncAlbums(ctx context.Context, albumIDs []string) (SyncResult, error) {
	var result SyncResult

	running, err := s.catalog.IsSyncRunning(entities.SyncTypeAlbums)
	if err != nil {
		return result, fmt.Errorf("failed to check sync status: %w", err)
	}
	if running {
		return result, ErrSyncInProgress
	}

	if err := s.catalog.StartSync(entities.SyncTypeAlbums, len(albumIDs)); err != nil {
		return result, fmt.Errorf("failed to start sync: %w", err)
	}

	for _, albumID := range albumIDs {
		if err := ctx.Err(); err != nil {
			_ = s.catalog.CompleteSync(entities.SyncTypeAlbums, false, "sync was canceled")
			return result, err
		}

		n, err := s.SyncAlbum(ctx, albumID)
		result.AlbumsProcessed++
		if err != nil {
			log.Printf("[SYNC] Album %s failed: %v", albumID, err)
			result.AlbumsFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("album %s: %v", albumID, err))
		} else {
			result.PhotosStored += n
		}

		_ = s.catalog.UpdateSyncProgress(entities.SyncTypeAlbums,
			result.AlbumsProcessed, result.AlbumsProcessed-result.AlbumsFailed, result.AlbumsFailed, albumID)
	}

	errMsg := strings.Join(result.Errors, "; ")
	if err := s.catalog.CompleteSync(entities.SyncTypeAlbums, result.AlbumsFailed == 0, errMsg); err != nil {
		return result, fmt.Errorf("failed to complete sync: %w", err)
	}

	log.Printf("[SYNC] Refreshed %d albums (%d failed), %d photos stored",
		result.AlbumsProcessed, result.AlbumsFailed, result.PhotosStored)
	return result, nil
}

// SyncAlbum refreshes one album and returns the number of photos stored.
func (s *AlbumSyncService) SyncAlbum(ctx context.Context, albumID string) (int, error) {
	listed, err := s.lister.ListPhotos(ctx, albumID)
	if err != nil {
		return 0, err
	}

	list := make([]entities.Photo, len(listed))
	for i, p := range listed {
		list[i] = ToEntity(p)
	}
	if err := s.catalog.ReplaceAlbumPhotos(albumID, list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// ToEntity converts a service photo record to a catalog entity.
func ToEntity(p api.PhotoData) entities.Photo {
	return entities.Photo{
		ID:            p.ID,
		Filename:      p.Filename,
		Path:          p.Path,
		ThumbnailPath: p.ThumbnailPath,
		Description:   p.Description,
		Tags:          p.Tags,
		TakenAt:       p.TakenAt,
		ModifiedAt:    p.ModifiedAt,
		UploadedAt:    p.UploadedAt,
	}
}
