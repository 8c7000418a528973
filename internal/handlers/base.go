package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"ocr-translate-api/internal/models"
	"ocr-translate-api/internal/services"
	"ocr-translate-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ImageProcessor interface {
	ProcessImage(ctx context.Context, data []byte, contentType string) (*models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
}

type TranslatedUploader interface {
	UploadTranslated(ctx context.Context, data []byte, contentType string) (string, error)
}

type TextTranslator interface {
	TranslateText(ctx context.Context, text, sourceLang string) (string, error)
}

type HealthChecker interface {
	CheckOverall(ctx context.Context) (map[string]services.HealthStatus, bool)
}

// Handlers holds all handler instances
type Handlers struct {
	Image     *ImageHandler
	Upload    *UploadHandler
	Translate *TranslateHandler
	Health    *HealthHandler
}

// NewHandlers creates and returns all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Image:     NewImageHandler(svcs.Image),
		Upload:    NewUploadHandler(svcs.Upload),
		Translate: NewTranslateHandler(svcs.Translation),
		Health:    NewHealthHandler(svcs.Health),
	}
}

// readUpload returns the bytes and declared content type of the "file" form field.
func readUpload(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			return nil, "", errors.ErrPayloadTooLarge
		}
		return nil, "", errors.WrapError(err, errors.ErrValidation.Code, "file is required", errors.ErrValidation.Status)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", errors.WrapError(err, errors.ErrBadRequest.Code, "unreadable upload", errors.ErrBadRequest.Status)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		if isTooLarge(err) {
			return nil, "", errors.ErrPayloadTooLarge
		}
		return nil, "", errors.WrapError(err, errors.ErrBadRequest.Code, "unreadable upload", errors.ErrBadRequest.Status)
	}
	return data, fh.Header.Get("Content-Type"), nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if stderrors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
