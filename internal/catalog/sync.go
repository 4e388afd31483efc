package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/photoalbum/internal/entities"
)

// staleSyncAfter is how long a running sync may go without progress before
// it is considered interrupted.
const staleSyncAfter = 10 * time.Minute

// GetSyncProgress returns the latest progress record for a sync type.
func (d *Database) GetSyncProgress(syncType entities.SyncType) (*entities.SyncProgress, error) {
	var progress entities.SyncProgress
	err := d.DB.Where("sync_type = ?", syncType).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// StartSync creates or resets a sync progress record.
func (d *Database) StartSync(syncType entities.SyncType, totalItems int) error {
	var progress entities.SyncProgress
	result := d.DB.Where("sync_type = ?", syncType).First(&progress)

	now := time.Now()
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		progress = entities.SyncProgress{
			SyncType:   syncType,
			Status:     entities.SyncStatusRunning,
			TotalItems: totalItems,
			StartedAt:  now,
			UpdatedAt:  now,
		}
		return d.DB.Create(&progress).Error
	} else if result.Error != nil {
		return result.Error
	}

	progress.Status = entities.SyncStatusRunning
	progress.TotalItems = totalItems
	progress.Processed = 0
	progress.Succeeded = 0
	progress.Failed = 0
	progress.CurrentItem = ""
	progress.Error = ""
	progress.StartedAt = now
	progress.UpdatedAt = now
	progress.CompletedAt = nil

	return d.DB.Save(&progress).Error
}

// UpdateSyncProgress records the progress of an ongoing sync.
func (d *Database) UpdateSyncProgress(syncType entities.SyncType, processed, succeeded, failed int, currentItem string) error {
	return d.DB.Model(&entities.SyncProgress{}).
		Where("sync_type = ?", syncType).
		Updates(map[string]any{
			"processed":    processed,
			"succeeded":    succeeded,
			"failed":       failed,
			"current_item": currentItem,
			"updated_at":   time.Now(),
		}).Error
}

// CompleteSync marks a sync as completed or failed.
func (d *Database) CompleteSync(syncType entities.SyncType, succeeded bool, errorMsg string) error {
	now := time.Now()
	status := entities.SyncStatusCompleted
	if !succeeded {
		status = entities.SyncStatusFailed
	}

	updates := map[string]any{
		"status":       status,
		"current_item": "",
		"updated_at":   now,
		"completed_at": now,
	}
	if errorMsg != "" {
		updates["error"] = errorMsg
	}
	return d.DB.Model(&entities.SyncProgress{}).
		Where("sync_type = ?", syncType).
		Updates(updates).Error
}

// IsSyncRunning reports whether a sync of the given type is in progress.
// A running record without progress for staleSyncAfter is marked failed.
func (d *Database) IsSyncRunning(syncType entities.SyncType) (bool, error) {
	var progress entities.SyncProgress
	err := d.DB.Where("sync_type = ? AND status = ?", syncType, entities.SyncStatusRunning).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if progress.UpdatedAt.Before(time.Now().Add(-staleSyncAfter)) {
		_ = d.CompleteSync(syncType, false, "sync was interrupted")
		return false, nil
	}
	return true, nil
}
