// Package api is the client for the photo service's REST endpoints that the
// viewer depends on: album listings and original-photo downloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultFilename is used when a single download carries no usable filename.
	DefaultFilename = "photo.jpg"
	// DefaultArchiveFilename is used when a bulk download carries no usable filename.
	DefaultArchiveFilename = "photos.zip"

	defaultTimeout     = 60 * time.Second
	maxRetries         = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2
)

// Client talks to the photo service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient creates a client for the service at baseURL.
// A non-positive timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: initialRetryDelay,
	}
}

// PhotoData is a photo record as listed by the service.
type PhotoData struct {
	ID            string     `json:"_id"`
	Filename      string     `json:"filename"`
	Path          string     `json:"path"`
	ThumbnailPath string     `json:"thumbnailPath"`
	Album         string     `json:"album"`
	Tags          []string   `json:"tags"`
	Description   string     `json:"description"`
	TakenAt       *time.Time `json:"takenAt"`
	ModifiedAt    *time.Time `json:"modifiedAt"`
	UploadedAt    time.Time  `json:"uploadedAt"`
}

// Download is a downloaded payload and the filename the service suggested for it.
type Download struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ListPhotos returns the photos of an album in service order.
func (c *Client) ListPhotos(ctx context.Context, albumID string) ([]PhotoData, error) {
	endpoint := c.baseURL + "/api/photos/" + url.PathEscape(albumID)

	var photos []PhotoData
	err := c.withRetry(ctx, func() error {
		resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		photos = nil
		if err := json.NewDecoder(resp.Body).Decode(&photos); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list photos of album %s: %w", albumID, err)
	}
	return photos, nil
}

// DownloadPhoto fetches the original bytes of a single photo.
func (c *Client) DownloadPhoto(ctx context.Context, id string) (*Download, error) {
	endpoint := c.baseURL + "/api/photos/" + url.PathEscape(id) + "/download"

	d, err := c.download(ctx, http.MethodGet, endpoint, nil, DefaultFilename)
	if err != nil {
		return nil, fmt.Errorf("download photo %s: %w", id, err)
	}
	return d, nil
}

// DownloadPhotos fetches several photos as one archive.
func (c *Client) DownloadPhotos(ctx context.Context, ids []string) (*Download, error) {
	if len(ids) == 0 {
		return nil, errors.New("no photos to download")
	}

	body, err := json.Marshal(struct {
		PhotoIDs []string `json:"photoIds"`
	}{PhotoIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	d, err := c.download(ctx, http.MethodPost, c.baseURL+"/api/photos/download", body, DefaultArchiveFilename)
	if err != nil {
		return nil, fmt.Errorf("download %d photos: %w", len(ids), err)
	}
	return d, nil
}

func (c *Client) download(ctx context.Context, method, endpoint string, body []byte, fallback string) (*Download, error) {
	var d *Download
	err := c.withRetry(ctx, func() error {
		resp, err := c.do(ctx, method, endpoint, body)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		d = &Download{
			Data:        data,
			Filename:    FilenameFromDisposition(resp.Header.Get("Content-Disposition"), fallback),
			ContentType: resp.Header.Get("Content-Type"),
		}
		return nil
	})
	return d, err
}

// do sends one request and maps non-200 statuses to errors. The caller
// closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "PhotoAlbum/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, &ServerError{StatusCode: resp.StatusCode}
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(msg))
	}
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.calculateRetryDelay(attempt)):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// Only retry on rate limits or server errors
		if !isRetryableError(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) calculateRetryDelay(attempt int) time.Duration {
	delay := c.retryDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}
