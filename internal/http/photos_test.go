package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/entities"
	"github.com/mrlokans/photoalbum/internal/imagecache"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/swipe"
	"github.com/mrlokans/photoalbum/internal/tasks"
)

const testOrigin = "http://nas.local:5000"

type fakeImageStore struct {
	entry *imagecache.Entry
	err   error
	urls  []string
}

func (f *fakeImageStore) Get(ctx context.Context, imageURL string) (*imagecache.Entry, error) {
	f.urls = append(f.urls, imageURL)
	return f.entry, f.err
}

type fakeEnqueuer struct {
	tasks []backlite.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, t ...backlite.Task) ([]string, error) {
	f.tasks = append(f.tasks, t...)
	return []string{"task-1"}, f.err
}

func seededCatalog(t *testing.T) *catalog.Database {
	t.Helper()
	db := setupTestCatalog(t)
	day := func(d int) time.Time { return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, db.ReplaceAlbumPhotos("summer", []entities.Photo{
		{ID: "p1", Filename: "b.jpg", Path: "/uploads/b.jpg", ThumbnailPath: "/thumbs/b.jpg", UploadedAt: day(1)},
		{ID: "p2", Filename: "a.jpg", Path: "https://cdn.example.com/a.jpg", UploadedAt: day(2)},
		{ID: "p3", Filename: "c.jpg", Path: "", UploadedAt: day(3)},
	}))
	return db
}

func newTestRouter(db *catalog.Database, cache ImageStore, enqueuer TaskEnqueuer) *gin.Engine {
	cfg := RouterConfig{
		Catalog:       db,
		CatalogHealth: db,
		Resolver:      photos.NewResolver(testOrigin),
		ImageCache:    cache,
		TaskClient:    enqueuer,
		Version:       "test",
	}
	return NewRouter(cfg)
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListAlbumPhotos(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"default is newest upload first", "", []string{"p3", "p2", "p1"}},
		{"filename ascending", "?sort=filename&order=asc", []string{"p2", "p1", "p3"}},
		{"custom ascending reverses service order", "?sort=custom&order=asc", []string{"p3", "p2", "p1"}},
		{"custom descending is service order", "?sort=custom", []string{"p1", "p2", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/api/albums/summer/photos"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var response []PhotoResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			got := make([]string, len(response))
			for i, p := range response {
				got[i] = p.ID
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestListAlbumPhotos_ResolvesURLs(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	w := get(router, "/api/albums/summer/photos?sort=custom")
	require.Equal(t, http.StatusOK, w.Code)

	var response []PhotoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 3)

	assert.Equal(t, testOrigin+"/uploads/b.jpg", response[0].URL)
	assert.Equal(t, testOrigin+"/thumbs/b.jpg", response[0].ThumbnailURL)
	assert.Equal(t, "/api/photos/p1/image", response[0].CachedURL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", response[1].URL)
	assert.Empty(t, response[2].URL)
}

func TestListAlbumPhotos_Errors(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/albums/winter/photos").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/albums/summer/photos?sort=size").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/albums/summer/photos?order=sideways").Code)
}

func TestGetImage_ServesCachedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image_abc.webp")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WEBP"), 0644))
	cache := &fakeImageStore{entry: &imagecache.Entry{Path: path, ContentType: "image/webp"}}
	router := newTestRouter(seededCatalog(t), cache, nil)

	w := get(router, "/api/photos/p1/image")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/webp", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF....WEBP", w.Body.String())
	assert.Equal(t, []string{testOrigin + "/uploads/b.jpg"}, cache.urls)
}

func TestGetImage_RedirectsWhenCachingFails(t *testing.T) {
	cache := &fakeImageStore{err: imagecache.ErrNotImage}
	router := newTestRouter(seededCatalog(t), cache, nil)

	w := get(router, "/api/photos/p2/image")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://cdn.example.com/a.jpg", w.Header().Get("Location"))
}

func TestGetImage_RedirectsWithoutCache(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	w := get(router, "/api/photos/p1/image")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, testOrigin+"/uploads/b.jpg", w.Header().Get("Location"))
}

func TestGetImage_NotFound(t *testing.T) {
	router := newTestRouter(seededCatalog(t), &fakeImageStore{}, nil)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/photos/nope/image").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/photos/p3/image").Code, "photo without a path")
}

func TestEnqueueAlbumSync(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	router := newTestRouter(seededCatalog(t), nil, enqueuer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/albums/summer/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []backlite.Task{tasks.SyncAlbumsTask{AlbumIDs: []string{"summer"}}}, enqueuer.tasks)
	assert.Contains(t, w.Body.String(), "task-1")
}

func TestEnqueueAlbumSync_Failure(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("database is locked")}
	router := newTestRouter(seededCatalog(t), nil, enqueuer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/albums/summer/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEnqueueAlbumSync_NotRegisteredWithoutTasks(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/albums/summer/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreloadAround(t *testing.T) {
	var got [][]string
	router := NewRouter(RouterConfig{
		Catalog:       seededCatalog(t),
		Resolver:      photos.NewResolver(testOrigin),
		Preloader:     swipe.PreloaderFunc(func(urls []string) { got = append(got, urls) }),
		PreloadRadius: 1,
	})

	post := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	w := post("/api/albums/summer/preload?index=0&sort=custom")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, [][]string{{testOrigin + "/uploads/b.jpg", "https://cdn.example.com/a.jpg"}}, got)

	// p3 has no path and is skipped
	w = post("/api/albums/summer/preload?index=2&sort=custom")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, got[1])

	assert.Equal(t, http.StatusBadRequest, post("/api/albums/summer/preload").Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/albums/summer/preload?index=3").Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/albums/summer/preload?index=0&sort=size").Code)
	assert.Equal(t, http.StatusNotFound, post("/api/albums/winter/preload?index=0").Code)
	assert.Len(t, got, 2)
}

func TestPreloadAround_RadiusMatchesViewer(t *testing.T) {
	tests := []struct {
		name   string
		radius int
		want   []string
	}{
		{name: "zero uses the default", radius: 0, want: []string{testOrigin + "/uploads/b.jpg", "https://cdn.example.com/a.jpg"}},
		{name: "negative disables", radius: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			router := NewRouter(RouterConfig{
				Catalog:       seededCatalog(t),
				Resolver:      photos.NewResolver(testOrigin),
				Preloader:     swipe.PreloaderFunc(func(urls []string) { got = append(got, urls) }),
				PreloadRadius: tt.radius,
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/albums/summer/preload?index=0&sort=custom", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusAccepted, w.Code)

			var response struct {
				Data struct {
					URLs []string `json:"urls"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.want, response.Data.URLs)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, [][]string{tt.want}, got)
			}
		})
	}
}

func TestPreloadAround_NotRegisteredWithoutPreloader(t *testing.T) {
	router := newTestRouter(seededCatalog(t), nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/albums/summer/preload?index=0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
