// Package imagecache keeps local copies of photo images so that preloaded
// neighbours are served without another round trip to the photo service.
package imagecache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 64 << 20
)

// ErrNotImage is returned when a fetched payload does not decode as an image.
var ErrNotImage = errors.New("payload is not a supported image")

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// Entry is a cached image on disk.
type Entry struct {
	Path        string
	ContentType string
}

// Cache handles local caching of photo images.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
	maxBytes   int64
}

// NewCache creates a new image cache at the specified directory.
func NewCache(cacheDir string, timeout time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Cache{
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBytes: defaultMaxBytes,
	}, nil
}

// Get returns the cached image at imageURL, fetching and caching it if not
// present. Payloads that do not decode as an image are never cached.
func (c *Cache) Get(ctx context.Context, imageURL string) (*Entry, error) {
	if imageURL == "" {
		return nil, errors.New("empty image url")
	}

	if entry, ok := c.Lookup(imageURL); ok {
		return entry, nil
	}

	return c.fetchAndCache(ctx, imageURL)
}

// Warm makes sure the image is cached.
func (c *Cache) Warm(ctx context.Context, imageURL string) error {
	_, err := c.Get(ctx, imageURL)
	return err
}

// Lookup returns the cached image without fetching.
func (c *Cache) Lookup(imageURL string) (*Entry, bool) {
	matches, err := filepath.Glob(filepath.Join(c.cacheDir, c.baseName(imageURL)+".*"))
	if err != nil || len(matches) == 0 {
		return nil, false
	}
	path := matches[0]
	format := filepath.Ext(path)[1:]
	return &Entry{Path: path, ContentType: contentTypes[format]}, true
}

// Invalidate removes the cached image at imageURL.
func (c *Cache) Invalidate(imageURL string) error {
	matches, err := filepath.Glob(filepath.Join(c.cacheDir, c.baseName(imageURL)+".*"))
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// baseName is unique per URL; the image format is the extension.
func (c *Cache) baseName(imageURL string) string {
	hash := sha256.Sum256([]byte(imageURL))
	return fmt.Sprintf("image_%x", hash[:12])
}

func (c *Cache) fetchAndCache(ctx context.Context, imageURL string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "PhotoAlbum/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", c.maxBytes)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	cachePath := filepath.Join(c.cacheDir, c.baseName(imageURL)+"."+format)

	// Temp file in the same directory so the rename is atomic
	tmpFile, err := os.CreateTemp(c.cacheDir, "tmp_image_")
	if err != nil {
		return nil, err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return nil, err
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, cachePath); err != nil {
		return nil, err
	}
	return &Entry{Path: cachePath, ContentType: contentTypes[format]}, nil
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}
