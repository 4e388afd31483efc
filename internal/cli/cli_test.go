package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/entities"
)

func newPhotoService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/photos/:id", func(c *gin.Context) {
		if c.Param("id") != "summer" {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, []gin.H{
			{"_id": "p1", "filename": "beach.jpg", "path": "/uploads/beach.jpg", "uploadedAt": "2024-06-01T10:00:00Z"},
			{"_id": "p2", "filename": "dunes.jpg", "path": "/uploads/dunes.jpg", "uploadedAt": "2024-06-02T10:00:00Z"},
		})
	})
	router.GET("/api/photos/:id/download", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="beach.jpg"`)
		c.Data(http.StatusOK, "image/jpeg", []byte("jpeg bytes"))
	})
	router.POST("/api/photos/download", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="photos.zip"`)
		c.Data(http.StatusOK, "application/zip", []byte("zip bytes"))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

func TestSyncCommand_ParseFlags(t *testing.T) {
	t.Run("requires albums", func(t *testing.T) {
		t.Setenv("ALBUM_SYNC_ALBUMS", "")
		err := NewSyncCommand().ParseFlags(nil)
		assert.Error(t, err)
	})

	t.Run("albums from environment", func(t *testing.T) {
		t.Setenv("ALBUM_SYNC_ALBUMS", "summer, winter")
		cmd := NewSyncCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		assert.Equal(t, []string{"summer", "winter"}, cmd.AlbumIDs)
	})

	t.Run("flag overrides environment", func(t *testing.T) {
		t.Setenv("ALBUM_SYNC_ALBUMS", "summer")
		cmd := NewSyncCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-albums", "autumn"}))
		assert.Equal(t, []string{"autumn"}, cmd.AlbumIDs)
	})
}

func TestSyncAndListCommands(t *testing.T) {
	origin := newPhotoService(t)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	syncCmd := &SyncCommand{
		Origin:       origin,
		DatabasePath: dbPath,
		AlbumIDs:     []string{"summer"},
		Timeout:      5 * time.Second,
		Verbose:      true,
	}
	require.NoError(t, syncCmd.Run())

	db, err := catalog.NewDatabase(dbPath)
	require.NoError(t, err)
	list, err := db.Photos("summer", entities.SortByCustom, entities.SortDesc)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	require.NoError(t, db.Close())

	listCmd := &ListCommand{DatabasePath: dbPath, AlbumID: "summer", SortKey: "filename", SortOrder: "asc"}
	assert.NoError(t, listCmd.Run())

	missing := &ListCommand{DatabasePath: dbPath, AlbumID: "winter", SortKey: "filename", SortOrder: "asc"}
	assert.ErrorIs(t, missing.Run(), catalog.ErrAlbumNotFound)
}

func TestListCommand_ParseFlags(t *testing.T) {
	assert.Error(t, NewListCommand().ParseFlags(nil), "album is required")
	assert.ErrorIs(t, NewListCommand().ParseFlags([]string{"-album", "a", "-sort", "size"}), catalog.ErrInvalidSort)

	cmd := NewListCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-album", "summer", "-sort", "takenAt", "-order", "asc"}))
	assert.Equal(t, "takenAt", cmd.SortKey)
}

func TestDownloadCommand(t *testing.T) {
	origin := newPhotoService(t)
	dir := t.TempDir()

	single := &DownloadCommand{Origin: origin, OutputDir: dir, PhotoIDs: []string{"p1"}, Timeout: 5 * time.Second}
	require.NoError(t, single.Run())
	data, err := os.ReadFile(filepath.Join(dir, "beach.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	// Downloading again keeps the first file
	require.NoError(t, single.Run())
	assert.FileExists(t, filepath.Join(dir, "beach (1).jpg"))

	bulk := &DownloadCommand{Origin: origin, OutputDir: dir, PhotoIDs: []string{"p1", "p2"}, Timeout: 5 * time.Second}
	require.NoError(t, bulk.Run())
	data, err = os.ReadFile(filepath.Join(dir, "photos.zip"))
	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(data))
}

func TestDownloadCommand_ParseFlags(t *testing.T) {
	assert.Error(t, NewDownloadCommand().ParseFlags(nil))

	cmd := NewDownloadCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-output", "/tmp/out", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, cmd.PhotoIDs)
	assert.Equal(t, "/tmp/out", cmd.OutputDir)
}

func TestReplayCommand(t *testing.T) {
	assert.Error(t, NewReplayCommand().ParseFlags(nil))

	cmd := NewReplayCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-script", "../replay/testdata/range_select.json", "-json"}))
	assert.NoError(t, cmd.Run())

	realtime := NewReplayCommand()
	require.NoError(t, realtime.ParseFlags([]string{"-script", "../replay/testdata/swipe_next.json", "-realtime"}))
	assert.True(t, realtime.Realtime)
	assert.NoError(t, realtime.Run())

	missing := NewReplayCommand()
	require.NoError(t, missing.ParseFlags([]string{"-script", "testdata/none.json"}))
	assert.Error(t, missing.Run())
}
