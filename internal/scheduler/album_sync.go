package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/photoalbum/internal/config"
	"github.com/mrlokans/photoalbum/internal/services"
)

const syncTimeout = 10 * time.Minute

// AlbumSyncer refreshes album listings in the catalog.
type AlbumSyncer interface {
	SyncAlbums(ctx context.Context, albumIDs []string) (services.SyncResult, error)
}

// AlbumSyncScheduler periodically refreshes the catalog from the photo service
type AlbumSyncScheduler struct {
	syncer AlbumSyncer
	config config.Sync

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewAlbumSyncScheduler creates a new scheduler instance
func NewAlbumSyncScheduler(syncer AlbumSyncer, cfg config.Sync) *AlbumSyncScheduler {
	return &AlbumSyncScheduler{
		syncer: syncer,
		config: cfg,
		cron:   cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start begins the scheduler if sync is enabled
func (s *AlbumSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("[SYNC] Scheduler disabled")
		return nil
	}

	if len(s.config.AlbumIDs) == 0 {
		log.Printf("[SYNC] No albums configured, scheduler not started")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.config.Schedule, time.Now())
	log.Printf("[SYNC] Scheduler started with schedule '%s' (%s) for %d albums. Next run: %v",
		s.config.Schedule,
		GetCronDescription(s.config.Schedule),
		len(s.config.AlbumIDs),
		nextRun)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AlbumSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("[SYNC] Scheduler stopped")
}

// RunNow triggers an immediate sync
func (s *AlbumSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active
func (s *AlbumSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync is currently in progress
func (s *AlbumSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next sync will occur
func (s *AlbumSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync performs the actual sync operation
func (s *AlbumSyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("[SYNC] Skipped (already syncing)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	log.Printf("[SYNC] Starting refresh of %d albums", len(s.config.AlbumIDs))
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	result, err := s.syncer.SyncAlbums(ctx, s.config.AlbumIDs)
	if err != nil {
		log.Printf("[SYNC] Refresh failed: %v", err)
		return
	}

	log.Printf("[SYNC] Refreshed %d albums (%d failed), %d photos in %v",
		result.AlbumsProcessed, result.AlbumsFailed, result.PhotosStored,
		time.Since(startTime).Round(time.Millisecond))
}
