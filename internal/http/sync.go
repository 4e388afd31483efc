package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/photoalbum/internal/tasks"
)

// SyncController queues catalog refreshes.
type SyncController struct {
	taskClient TaskEnqueuer
}

// NewSyncController creates a new SyncController.
func NewSyncController(taskClient TaskEnqueuer) *SyncController {
	return &SyncController{taskClient: taskClient}
}

// EnqueueAlbumSync queues a refresh of one album.
// POST /api/albums/:id/sync
func (sc *SyncController) EnqueueAlbumSync(c *gin.Context) {
	albumID, ok := parsePhotoIDParam(c, "id")
	if !ok {
		return
	}

	ids, err := sc.taskClient.Enqueue(c.Request.Context(), tasks.SyncAlbumsTask{AlbumIDs: []string{albumID}})
	if err != nil {
		respondInternalError(c, err, "enqueue album sync")
		return
	}

	respondAccepted(c, "album sync queued", gin.H{"album_id": albumID, "task_ids": ids})
}
