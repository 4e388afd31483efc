package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/photoalbum/internal/entities"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	catalog CatalogHealth
	version string
}

func NewHealthController(catalog CatalogHealth, version string) *HealthController {
	return &HealthController{
		catalog: catalog,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.catalog != nil {
		if err := h.catalog.Ping(); err != nil {
			checks["catalog"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["catalog"] = "ok"
			checks["album_sync"] = h.syncStatus()
		}
	} else {
		checks["catalog"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// syncStatus describes the latest album refresh. A failed refresh does not
// make the service unhealthy; the catalog still serves the last listing.
func (h *HealthController) syncStatus() string {
	progress, err := h.catalog.GetSyncProgress(entities.SyncTypeAlbums)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "never"
	}
	if err != nil {
		return "error: " + err.Error()
	}
	if progress.Status == entities.SyncStatusFailed && progress.Error != "" {
		return string(progress.Status) + ": " + progress.Error
	}
	return string(progress.Status)
}
