package downloads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/photoalbum/internal/api"
)

type mockFetcher struct {
	single *api.Download
	bulk   *api.Download
	err    error
	gotIDs []string
}

func (m *mockFetcher) DownloadPhoto(ctx context.Context, id string) (*api.Download, error) {
	m.gotIDs = []string{id}
	return m.single, m.err
}

func (m *mockFetcher) DownloadPhotos(ctx context.Context, ids []string) (*api.Download, error) {
	m.gotIDs = ids
	return m.bulk, m.err
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (r *recordingNotifier) Success(message string) { r.successes = append(r.successes, message) }
func (r *recordingNotifier) Failure(message string) { r.failures = append(r.failures, message) }

type failingSaver struct{}

func (failingSaver) Save(string, []byte) (string, error) { return "", errors.New("disk full") }

func TestService_Download(t *testing.T) {
	saver, err := NewDirSaver(t.TempDir())
	require.NoError(t, err)
	fetcher := &mockFetcher{single: &api.Download{Data: []byte("jpeg"), Filename: "sunset.jpg"}}
	notifier := &recordingNotifier{}

	path, err := NewService(fetcher, saver, notifier).Download(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(saver.Dir(), "sunset.jpg"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, []string{msgSaved}, notifier.successes)
	assert.Empty(t, notifier.failures)
}

func TestService_Download_FetchFailure(t *testing.T) {
	saver, err := NewDirSaver(t.TempDir())
	require.NoError(t, err)
	fetcher := &mockFetcher{err: api.ErrNotFound}
	notifier := &recordingNotifier{}

	_, err = NewService(fetcher, saver, notifier).Download(context.Background(), "gone")

	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, []string{msgFailed}, notifier.failures)
	entries, _ := os.ReadDir(saver.Dir())
	assert.Empty(t, entries)
}

func TestService_Download_SaveFailure(t *testing.T) {
	fetcher := &mockFetcher{single: &api.Download{Data: []byte("x"), Filename: "a.jpg"}}
	notifier := &recordingNotifier{}

	_, err := NewService(fetcher, failingSaver{}, notifier).Download(context.Background(), "p1")

	assert.Error(t, err)
	assert.Equal(t, []string{msgFailed}, notifier.failures)
	assert.Empty(t, notifier.successes)
}

func TestService_DownloadSelection(t *testing.T) {
	saver, err := NewDirSaver(t.TempDir())
	require.NoError(t, err)
	fetcher := &mockFetcher{bulk: &api.Download{Data: []byte("PK"), Filename: "photos.zip"}}
	notifier := &recordingNotifier{}
	svc := NewService(fetcher, saver, notifier)

	path, err := svc.DownloadSelection(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, fetcher.gotIDs)
	assert.Equal(t, "photos.zip", filepath.Base(path))
	assert.Equal(t, []string{msgSavedBulk}, notifier.successes)

	_, err = svc.DownloadSelection(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, []string{msgNothingToDo}, notifier.failures)
}

func TestDirSaver_DoesNotOverwrite(t *testing.T) {
	saver, err := NewDirSaver(filepath.Join(t.TempDir(), "nested", "downloads"))
	require.NoError(t, err)

	first, err := saver.Save("a.jpg", []byte("1"))
	require.NoError(t, err)
	second, err := saver.Save("a.jpg", []byte("2"))
	require.NoError(t, err)
	third, err := saver.Save("", []byte("3"))
	require.NoError(t, err)

	assert.Equal(t, "a.jpg", filepath.Base(first))
	assert.Equal(t, "a (1).jpg", filepath.Base(second))
	assert.Equal(t, api.DefaultFilename, filepath.Base(third))

	data, _ := os.ReadFile(first)
	assert.Equal(t, []byte("1"), data)

	entries, err := os.ReadDir(saver.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files left behind")
}

func TestDirSaver_StaysInsideDir(t *testing.T) {
	saver, err := NewDirSaver(t.TempDir())
	require.NoError(t, err)

	path, err := saver.Save("../../escape.jpg", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, saver.Dir(), filepath.Dir(path))
}
