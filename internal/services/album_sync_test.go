package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/entities"
)

type mockLister struct {
	albums map[string][]api.PhotoData
	calls  []string
}

func (m *mockLister) ListPhotos(ctx context.Context, albumID string) ([]api.PhotoData, error) {
	m.calls = append(m.calls, albumID)
	list, ok := m.albums[albumID]
	if !ok {
		return nil, api.ErrNotFound
	}
	return list, nil
}

func setupCatalog(t *testing.T) *catalog.Database {
	t.Helper()
	db, err := catalog.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSyncAlbums(t *testing.T) {
	db := setupCatalog(t)
	uploaded := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	lister := &mockLister{albums: map[string][]api.PhotoData{
		"summer": {
			{ID: "p1", Filename: "one.jpg", Path: "/uploads/one.jpg", Tags: []string{"sea"}, UploadedAt: uploaded},
			{ID: "p2", Filename: "two.jpg", Path: "/uploads/two.jpg", UploadedAt: uploaded.Add(time.Hour)},
		},
	}}
	svc := NewAlbumSyncService(lister, db)

	result, err := svc.SyncAlbums(context.Background(), []string{"summer", "winter"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.AlbumsProcessed)
	assert.Equal(t, 1, result.AlbumsFailed)
	assert.Equal(t, 2, result.PhotosStored)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "winter")
	assert.Equal(t, []string{"summer", "winter"}, lister.calls)

	seq, err := db.Sequence("summer", entities.SortByCustom, entities.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, seq.IDs(0, 1))

	progress, err := db.GetSyncProgress(entities.SyncTypeAlbums)
	require.NoError(t, err)
	assert.Equal(t, entities.SyncStatusFailed, progress.Status)
	assert.Equal(t, 1, progress.Succeeded)
	assert.Equal(t, 1, progress.Failed)
}

func TestSyncAlbums_AllSucceed(t *testing.T) {
	db := setupCatalog(t)
	lister := &mockLister{albums: map[string][]api.PhotoData{"empty": {}}}

	result, err := NewAlbumSyncService(lister, db).SyncAlbums(context.Background(), []string{"empty"})
	require.NoError(t, err)
	assert.Zero(t, result.AlbumsFailed)

	progress, err := db.GetSyncProgress(entities.SyncTypeAlbums)
	require.NoError(t, err)
	assert.Equal(t, entities.SyncStatusCompleted, progress.Status)
}

func TestSyncAlbums_RejectsConcurrentRun(t *testing.T) {
	db := setupCatalog(t)
	require.NoError(t, db.StartSync(entities.SyncTypeAlbums, 1))

	_, err := NewAlbumSyncService(&mockLister{}, db).SyncAlbums(context.Background(), []string{"summer"})
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestSyncAlbums_Canceled(t *testing.T) {
	db := setupCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lister := &mockLister{}

	_, err := NewAlbumSyncService(lister, db).SyncAlbums(ctx, []string{"summer"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lister.calls)

	running, err := db.IsSyncRunning(entities.SyncTypeAlbums)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestToEntity(t *testing.T) {
	taken := time.Date(2023, time.May, 2, 8, 0, 0, 0, time.UTC)
	p := ToEntity(api.PhotoData{
		ID: "x", Filename: "x.jpg", Path: "/x.jpg", ThumbnailPath: "/t/x.jpg",
		Album: "a", Tags: []string{"t"}, Description: "d", TakenAt: &taken,
	})

	assert.Equal(t, "x", p.ID)
	assert.Equal(t, "/t/x.jpg", p.ThumbnailPath)
	assert.Equal(t, []string{"t"}, p.Tags)
	assert.Equal(t, &taken, p.TakenAt)
	assert.Empty(t, p.AlbumID, "album is assigned by the catalog")
}
