package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"ocr-translate-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	images ImageProcessor
}

func NewImageHandler(images ImageProcessor) *ImageHandler {
	return &ImageHandler{images: images}
}

// ProcessImage handles POST /process-image/
func (h *ImageHandler) ProcessImage(c *gin.Context) {
	data, contentType, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.images.ProcessImage(c.Request.Context(), data, contentType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetJob handles GET /jobs/:id
func (h *ImageHandler) GetJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.WrapError(err, errors.ErrValidation.Code, "job id must be an integer", errors.ErrValidation.Status))
		return
	}

	job, err := h.images.GetJob(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			c.Error(errors.NewError(errors.ErrNotFound.Code, "Job not found", http.StatusNotFound))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, job)
}
