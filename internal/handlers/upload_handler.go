package handlers

import (
	"net/http"

	"ocr-translate-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploads TranslatedUploader
}

func NewUploadHandler(uploads TranslatedUploader) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadTranslatedImage handles POST /upload-translated-image/
func (h *UploadHandler) UploadTranslatedImage(c *gin.Context) {
	data, contentType, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	key, err := h.uploads.UploadTranslated(c.Request.Context(), data, contentType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.UploadTranslatedImageResponse{ObjectName: key})
}
