package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/config"
	http_controllers "github.com/mrlokans/photoalbum/internal/http"
	"github.com/mrlokans/photoalbum/internal/imagecache"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/scheduler"
	"github.com/mrlokans/photoalbum/internal/services"
	"github.com/mrlokans/photoalbum/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// checkWritableDir creates dir if needed and verifies files can be written
// to it by touching and removing a marker file.
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	marker := filepath.Join(dir, ".photoalbum")
	f, err := os.Create(marker)
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	f.Close()
	return os.Remove(marker)
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	log.Printf("Checking download directory: %s\n", cfg.Downloads.Dir)
	if err := checkWritableDir(cfg.Downloads.Dir); err != nil {
		log.Fatalf("Download directory check failed: %v", err)
		return
	}

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so queued warms can drain
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Photoalbum v%s", version)
	log.Printf("Photo service: %s", cfg.PhotoService.Origin)

	db, err := catalog.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize catalog: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing catalog: %v", err)
		}
	}()

	client := api.NewClient(cfg.PhotoService.Origin, cfg.PhotoService.Timeout)
	resolver := photos.NewResolver(cfg.PhotoService.Origin)
	syncService := services.NewAlbumSyncService(client, db)

	routerCfg := http_controllers.RouterConfig{
		Catalog:       db,
		CatalogHealth: db,
		Resolver:      resolver,
		PreloadRadius: cfg.Preload.Radius,
		Version:       version,
	}

	imageCache, err := imagecache.NewCache(cfg.Preload.CacheDir, cfg.PhotoService.Timeout)
	if err != nil {
		log.Printf("WARNING: Failed to initialize image cache, images will redirect to the photo service: %v", err)
	} else {
		log.Printf("Image cache initialized at %s", imageCache.CacheDir())
		routerCfg.ImageCache = imageCache
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var preloader *tasks.QueuePreloader
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewSyncAlbumsQueue(syncService))
		routerCfg.TaskClient = taskClient

		if imageCache != nil {
			taskClient.Register(tasks.NewWarmImageQueue(imageCache))
			preloader = tasks.NewQueuePreloader(taskClient)
			routerCfg.Preloader = preloader
		}

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic catalog refresh
	syncScheduler := scheduler.NewAlbumSyncScheduler(syncService, cfg.Sync)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := syncScheduler.Start(schedulerCtx); err != nil {
		log.Printf("WARNING: Album sync scheduler not started: %v", err)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		schedulerCancel()
		if preloader != nil {
			preloader.Wait()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
