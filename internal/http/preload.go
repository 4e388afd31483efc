package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/photos"
	"github.com/mrlokans/photoalbum/internal/swipe"
)

// PreloadController warms the images around the photo a viewer is showing,
// using the same window the swipe navigator preloads.
type PreloadController struct {
	catalog   PhotoCatalog
	preloader swipe.Preloader
	resolver  photos.Resolver
	radius    int
}

// NewPreloadController creates a new PreloadController. The radius follows
// swipe.EffectiveRadius, so the server warms the same window as the viewer;
// with preloading turned off requests are accepted and nothing is queued.
func NewPreloadController(catalog PhotoCatalog, preloader swipe.Preloader, resolver photos.Resolver, radius int) *PreloadController {
	radius, ok := swipe.EffectiveRadius(radius)
	if !ok {
		preloader = nil
	}
	return &PreloadController{
		catalog:   catalog,
		preloader: preloader,
		resolver:  resolver,
		radius:    radius,
	}
}

// PreloadAround queues the neighbors of a photo for warming.
// POST /api/albums/:id/preload?index=&sort=&order=
func (pc *PreloadController) PreloadAround(c *gin.Context) {
	albumID, ok := parsePhotoIDParam(c, "id")
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Query("index"))
	if err != nil || index < 0 {
		respondBadRequest(c, "invalid index")
		return
	}

	key, order, err := catalog.ParseSort(c.Query("sort"), c.Query("order"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	seq, err := pc.catalog.Sequence(albumID, key, order)
	if errors.Is(err, catalog.ErrAlbumNotFound) {
		respondNotFound(c, "album")
		return
	}
	if err != nil {
		respondInternalError(c, err, "load album sequence")
		return
	}
	if index >= len(seq) {
		respondBadRequest(c, "index out of range")
		return
	}

	urls := []string{}
	if pc.preloader != nil {
		urls = swipe.PreloadURLs(seq, pc.resolver, index, pc.radius)
	}
	if len(urls) > 0 {
		pc.preloader.Preload(urls)
	}

	respondAccepted(c, "preload queued", gin.H{"urls": urls})
}
