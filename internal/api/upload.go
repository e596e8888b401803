package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryloft/backend/internal/service"
)

// UploadHandler accepts image uploads and hands them to the configured
// sink. Uploads are anonymous; abuse damping happens at the rate limiter.
type UploadHandler struct {
	store service.UploadStore
}

func NewUploadHandler(store service.UploadStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /upload with a multipart "image" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("upload open failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.store.Store(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Printf("upload store failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{ImageURL: url})
}
