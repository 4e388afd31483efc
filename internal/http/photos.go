package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/entities"
	"github.com/mrlokans/photoalbum/internal/photos"
)

// PhotoResponse is a catalog photo with display URLs resolved.
type PhotoResponse struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	CachedURL    string     `json:"cached_url"`
	Description  string     `json:"description,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	ModifiedAt   *time.Time `json:"modified_at,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}

// PhotosController serves album listings and cached photo images.
type PhotosController struct {
	catalog  PhotoCatalog
	cache    ImageStore
	resolver photos.Resolver
}

// NewPhotosController creates a new PhotosController.
func NewPhotosController(catalog PhotoCatalog, cache ImageStore, resolver photos.Resolver) *PhotosController {
	return &PhotosController{
		catalog:  catalog,
		cache:    cache,
		resolver: resolver,
	}
}

// ListAlbumPhotos returns an album in display order.
// GET /api/albums/:id/photos?sort=&order=
func (pc *PhotosController) ListAlbumPhotos(c *gin.Context) {
	albumID, ok := parsePhotoIDParam(c, "id")
	if !ok {
		return
	}

	key, order, err := catalog.ParseSort(c.Query("sort"), c.Query("order"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	list, err := pc.catalog.Photos(albumID, key, order)
	if errors.Is(err, catalog.ErrAlbumNotFound) {
		respondNotFound(c, "album")
		return
	}
	if err != nil {
		respondInternalError(c, err, "list album photos")
		return
	}

	response := make([]PhotoResponse, len(list))
	for i, p := range list {
		response[i] = pc.toResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

// GetImage serves the cached image of a photo, fetching it on a miss.
// GET /api/photos/:id/image
func (pc *PhotosController) GetImage(c *gin.Context) {
	id, ok := parsePhotoIDParam(c, "id")
	if !ok {
		return
	}

	photo, err := pc.catalog.GetPhoto(id)
	if errors.Is(err, catalog.ErrPhotoNotFound) {
		respondNotFound(c, "photo")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get photo")
		return
	}

	imageURL := pc.resolver.URL(photo.Path)
	if imageURL == "" {
		respondNotFound(c, "image")
		return
	}

	if pc.cache == nil {
		c.Redirect(http.StatusTemporaryRedirect, imageURL)
		return
	}

	entry, err := pc.cache.Get(c.Request.Context(), imageURL)
	if err != nil {
		// Fallback: redirect to original URL
		c.Redirect(http.StatusTemporaryRedirect, imageURL)
		return
	}

	if entry.ContentType != "" {
		c.Header("Content-Type", entry.ContentType)
	}
	c.File(entry.Path)
}

func (pc *PhotosController) toResponse(p entities.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           p.ID,
		Filename:     p.Filename,
		URL:          pc.resolver.URL(p.Path),
		ThumbnailURL: pc.resolver.URL(p.ThumbnailPath),
		CachedURL:    "/api/photos/" + p.ID + "/image",
		Description:  p.Description,
		Tags:         p.Tags,
		TakenAt:      p.TakenAt,
		ModifiedAt:   p.ModifiedAt,
		UploadedAt:   p.UploadedAt,
	}
}
