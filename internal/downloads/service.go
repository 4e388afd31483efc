// Package downloads saves original photos from the photo service to the
// local machine and tells the user how it went.
package downloads

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/photoalbum/internal/api"
)

// Fetcher retrieves photo payloads from the photo service.
type Fetcher interface {
	DownloadPhoto(ctx context.Context, id string) (*api.Download, error)
	DownloadPhotos(ctx context.Context, ids []string) (*api.Download, error)
}

// Saver hands downloaded bytes to the platform's file-save mechanism and
// returns where they ended up.
type Saver interface {
	Save(filename string, data []byte) (string, error)
}

// Notifier shows transient user-visible messages.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

const (
	msgSaved       = "Photo downloaded"
	msgSavedBulk   = "Photos downloaded"
	msgFailed      = "Failed to download photo, please try again"
	msgFailedBulk  = "Failed to download photos, please try again"
	msgNothingToDo = "No photos selected"
)

// Service downloads photos and saves them. Failures are reported through the
// notifier and returned, never retried here.
type Service struct {
	fetcher  Fetcher
	saver    Saver
	notifier Notifier
}

// NewService creates a download service.
func NewService(fetcher Fetcher, saver Saver, notifier Notifier) *Service {
	return &Service{
		fetcher:  fetcher,
		saver:    saver,
		notifier: notifier,
	}
}

// Download saves a single photo and returns the saved location.
func (s *Service) Download(ctx context.Context, id string) (string, error) {
	d, err := s.fetcher.DownloadPhoto(ctx, id)
	if err != nil {
		log.Printf("[DOWNLOAD] Failed to download photo %s: %v", id, err)
		s.notifier.Failure(msgFailed)
		return "", err
	}

	path, err := s.saver.Save(d.Filename, d.Data)
	if err != nil {
		log.Printf("[DOWNLOAD] Failed to save photo %s as %q: %v", id, d.Filename, err)
		s.notifier.Failure(msgFailed)
		return "", fmt.Errorf("save photo %s: %w", id, err)
	}

	log.Printf("[DOWNLOAD] Saved photo %s to %s (%d bytes)", id, path, len(d.Data))
	s.notifier.Success(msgSaved)
	return path, nil
}

// DownloadSelection saves several photos as a single archive.
func (s *Service) DownloadSelection(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		s.notifier.Failure(msgNothingToDo)
		return "", fmt.Errorf("no photos selected")
	}

	d, err := s.fetcher.DownloadPhotos(ctx, ids)
	if err != nil {
		log.Printf("[DOWNLOAD] Failed to download %d photos: %v", len(ids), err)
		s.notifier.Failure(msgFailedBulk)
		return "", err
	}

	path, err := s.saver.Save(d.Filename, d.Data)
	if err != nil {
		log.Printf("[DOWNLOAD] Failed to save archive %q: %v", d.Filename, err)
		s.notifier.Failure(msgFailedBulk)
		return "", fmt.Errorf("save archive: %w", err)
	}

	log.Printf("[DOWNLOAD] Saved %d photos to %s (%d bytes)", len(ids), path, len(d.Data))
	s.notifier.Success(msgSavedBulk)
	return path, nil
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

// Success implements Notifier.
func (LogNotifier) Success(message string) {
	log.Printf("[NOTICE] %s", message)
}

// Failure implements Notifier.
func (LogNotifier) Failure(message string) {
	log.Printf("[NOTICE ERROR] %s", message)
}
