package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.CatalogHealth, cfg.Version)
	photosController := NewPhotosController(cfg.Catalog, cfg.ImageCache, cfg.Resolver)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	api.GET("/albums/:id/photos", photosController.ListAlbumPhotos)
	api.GET("/photos/:id/image", photosController.GetImage)

	if cfg.Preloader != nil {
		preload := NewPreloadController(cfg.Catalog, cfg.Preloader, cfg.Resolver, cfg.PreloadRadius)
		api.POST("/albums/:id/preload", preload.PreloadAround)
	}

	if cfg.TaskClient != nil {
		syncController := NewSyncController(cfg.TaskClient)
		api.POST("/albums/:id/sync", syncController.EnqueueAlbumSync)
	}

	return router
}
