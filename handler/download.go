package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashkendre1298/vastureports/middleware"
	"github.com/akashkendre1298/vastureports/pkg/logger"
	"github.com/akashkendre1298/vastureports/service"
)

type DownloadHandler struct {
	store *service.ArtifactStore
}

func NewDownloadHandler(store *service.ArtifactStore) *DownloadHandler {
	return &DownloadHandler{store: store}
}

// Serve sends the artifact named by the download token, then forgets it
func (h *DownloadHandler) Serve(c *gin.Context) {
	id := middleware.GetArtifactID(c)

	item := h.store.Take(id)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found or already downloaded"})
		return
	}

	logger.Info(c.Request.Context(), "serving report download",
		"artifact_id", item.ID,
		"filename", item.Artifact.Filename,
	)

	c.Header("Content-Disposition", service.ContentDisposition(item.Artifact.Filename))
	c.Data(http.StatusOK, item.Artifact.ContentType, item.Artifact.Data)
}
