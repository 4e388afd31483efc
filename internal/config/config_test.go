package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultPhotoServiceOrigin, cfg.PhotoService.Origin)
	assert.Equal(t, time.Minute, cfg.PhotoService.Timeout)

	assert.Equal(t, 10.0, cfg.Gestures.MoveThreshold)
	assert.Equal(t, 150.0, cfg.Gestures.ScrollBand)
	assert.Equal(t, 10.0, cfg.Gestures.ScrollMaxSpeed)
	assert.Equal(t, 0.05, cfg.Gestures.SwipeThresholdRatio)
	assert.Equal(t, 100*time.Millisecond, cfg.Gestures.SettleDuration)
	assert.Equal(t, 16*time.Millisecond, cfg.Gestures.FrameInterval)

	assert.Equal(t, 1, cfg.Preload.Radius)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "*/30 * * * *", cfg.Sync.Schedule)
	assert.Empty(t, cfg.Sync.AlbumIDs)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PHOTO_SERVICE_ORIGIN", "https://photos.example.com")
	t.Setenv("GESTURE_SETTLE_DURATION", "250ms")
	t.Setenv("PRELOAD_RADIUS", "2")
	t.Setenv("ALBUM_SYNC_ENABLED", "true")
	t.Setenv("ALBUM_SYNC_ALBUMS", "summer, winter,,")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "https://photos.example.com", cfg.PhotoService.Origin)
	assert.Equal(t, 250*time.Millisecond, cfg.Gestures.SettleDuration)
	assert.Equal(t, 2, cfg.Preload.Radius)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, []string{"summer", "winter"}, cfg.Sync.AlbumIDs)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ", []string{"a", "b"}},
		{",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.input))
		})
	}
}
