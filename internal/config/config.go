package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		PhotoService
		Gestures
		Preload
		Downloads
		Tasks
		Sync
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	PhotoService struct {
		Origin  string        // Base URL of the photo service, e.g. "http://localhost:5000"
		Timeout time.Duration // Per-request timeout for listings and downloads
	}
	Gestures struct {
		MoveThreshold       float64       // Movement before a drag locks its direction
		ScrollBand          float64       // Edge band that triggers auto-scroll
		ScrollMaxSpeed      float64       // Auto-scroll speed at the very edge, per frame
		SwipeThresholdRatio float64       // Fraction of the viewport width that commits a swipe
		SettleDuration      time.Duration // Swipe settle animation length
		FrameInterval       time.Duration // Frame loop tick
	}
	Preload struct {
		Radius   int    // Photos warmed on each side of the current one
		CacheDir string // Where warmed images are kept
	}
	Downloads struct {
		Dir string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Sync struct {
		Enabled  bool
		Schedule string   // Cron format: "*/30 * * * *" = every 30 minutes
		AlbumIDs []string // Albums mirrored into the catalog
	}
)

// splitList parses a comma separated list, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Photo service defaults
	v.SetDefault("photo_service_origin", DefaultPhotoServiceOrigin)
	v.SetDefault("photo_service_timeout", "60s")

	// Gesture defaults
	v.SetDefault("gesture_move_threshold", 10)
	v.SetDefault("gesture_scroll_band", 150)
	v.SetDefault("gesture_scroll_max_speed", 10)
	v.SetDefault("gesture_swipe_threshold_ratio", 0.05)
	v.SetDefault("gesture_settle_duration", "100ms")
	v.SetDefault("gesture_frame_interval", "16ms")

	// Preload and download defaults
	v.SetDefault("preload_radius", 1)
	v.SetDefault("preload_cache_dir", "./cache/images")
	v.SetDefault("download_dir", "./downloads")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Album sync defaults
	v.SetDefault("album_sync_enabled", false)
	v.SetDefault("album_sync_schedule", "*/30 * * * *") // Every 30 minutes
	v.SetDefault("album_sync_albums", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		PhotoService: PhotoService{
			Origin:  v.GetString("PHOTO_SERVICE_ORIGIN"),
			Timeout: v.GetDuration("PHOTO_SERVICE_TIMEOUT"),
		},
		Gestures: Gestures{
			MoveThreshold:       v.GetFloat64("GESTURE_MOVE_THRESHOLD"),
			ScrollBand:          v.GetFloat64("GESTURE_SCROLL_BAND"),
			ScrollMaxSpeed:      v.GetFloat64("GESTURE_SCROLL_MAX_SPEED"),
			SwipeThresholdRatio: v.GetFloat64("GESTURE_SWIPE_THRESHOLD_RATIO"),
			SettleDuration:      v.GetDuration("GESTURE_SETTLE_DURATION"),
			FrameInterval:       v.GetDuration("GESTURE_FRAME_INTERVAL"),
		},
		Preload: Preload{
			Radius:   v.GetInt("PRELOAD_RADIUS"),
			CacheDir: v.GetString("PRELOAD_CACHE_DIR"),
		},
		Downloads: Downloads{
			Dir: v.GetString("DOWNLOAD_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("ALBUM_SYNC_ENABLED"),
			Schedule: v.GetString("ALBUM_SYNC_SCHEDULE"),
			AlbumIDs: splitList(v.GetString("ALBUM_SYNC_ALBUMS")),
		},
	}
}
