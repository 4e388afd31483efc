package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/downloads"
	"github.com/mrlokans/photoalbum/internal/frame"
	"github.com/mrlokans/photoalbum/internal/http"
	"github.com/mrlokans/photoalbum/internal/imagecache"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/scheduler"
	"github.com/mrlokans/photoalbum/internal/selection"
	"github.com/mrlokans/photoalbum/internal/services"
	"github.com/mrlokans/photoalbum/internal/swipe"
	"github.com/mrlokans/photoalbum/internal/tasks"
)

// =============================================================================
// Gesture Core
// =============================================================================

// Frame schedulers
var _ frame.Scheduler = (*frame.Queue)(nil)
var _ frame.Scheduler = (*frame.Loop)(nil)

// Photo sequences
var _ photos.Sequence = photos.List(nil)
var _ photos.Sequence = photos.SequenceFunc(nil)

// Grid locators
var _ selection.Locator = selection.GridLocator{}
var _ selection.Locator = selection.LocatorFunc(nil)

// Preloaders
var _ swipe.Preloader = (*tasks.QueuePreloader)(nil)
var _ swipe.Preloader = swipe.PreloaderFunc(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.Catalog = (*catalog.Database)(nil)
var _ http.PhotoCatalog = (*catalog.Database)(nil)
var _ http.CatalogHealth = (*catalog.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ services.PhotoLister = (*api.Client)(nil)
var _ downloads.Fetcher = (*api.Client)(nil)
var _ downloads.Saver = (*downloads.DirSaver)(nil)
var _ downloads.Notifier = downloads.LogNotifier{}

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.ImageWarmer = (*imagecache.Cache)(nil)
var _ http.ImageStore = (*imagecache.Cache)(nil)
var _ tasks.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskEnqueuer = (*tasks.Client)(nil)
var _ tasks.AlbumSyncer = (*services.AlbumSyncService)(nil)
var _ scheduler.AlbumSyncer = (*services.AlbumSyncService)(nil)
