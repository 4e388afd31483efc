// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Gesture Core
//
//   - frame.Scheduler: run a callback before the next repaint (internal/frame/frame.go)
//   - photos.Sequence: the ordered photos on screen (internal/photos/photos.go)
//   - selection.Locator: grid item under a point (internal/selection/locator.go)
//   - autoscroll.Locator: the current scroll container (internal/autoscroll/autoscroll.go)
//   - swipe.Preloader: fire-and-forget image warming (internal/swipe/preload.go)
//
// The core components run on a single control goroutine. Implementations of
// these interfaces are called from that goroutine and must not block.
//
// ## Data Access Interfaces
//
//   - services.Catalog: album storage and sync progress (internal/services/interfaces.go)
//   - http.PhotoCatalog: listings for the companion server (internal/http/config.go)
//   - http.CatalogHealth: health checks (internal/http/config.go)
//
// ## External Service Interfaces
//
//   - services.PhotoLister: album listings from the photo service (internal/services/interfaces.go)
//   - downloads.Fetcher: single and bulk downloads (internal/downloads/service.go)
//   - downloads.Saver, downloads.Notifier: where downloads go and how the user hears about it
//
// ## Background Work
//
//   - tasks.ImageWarmer: the warm-up target of the task queue (internal/tasks/warm_image.go)
//   - tasks.AlbumSyncer, scheduler.AlbumSyncer: catalog refresh
//
// # Adding a New Preload Target
//
// To warm images somewhere other than the on-disk cache:
//
//  1. Implement tasks.ImageWarmer:
//
//     type CDNWarmer struct { client *http.Client }
//
//     func (w *CDNWarmer) Warm(ctx context.Context, imageURL string) error
//
//     var _ tasks.ImageWarmer = (*CDNWarmer)(nil)
//
//  2. Register tasks.NewWarmImageQueue(warmer) in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
