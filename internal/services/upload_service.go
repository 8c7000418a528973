package services

import (
	"context"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/pkg/errors"

	fylogger "github.com/FyersDev/trading-logger-go"
)

// UploadService stores already-translated images. It never touches the database.
type UploadService struct {
	*BaseService
}

func NewUploadService(base *BaseService) *UploadService {
	return &UploadService{BaseService: base}
}

// UploadTranslated stores data under a fresh "translated-<uuid>.jpg" key and returns the key.
func (s *UploadService) UploadTranslated(ctx context.Context, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = defines.DefaultContentType
	}
	key := defines.TranslatedImagePrefix + s.newID() + defines.SourceImageExt

	if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
		fylogger.ErrorLog(ctx, "Storage upload failed", err, map[string]interface{}{"object": key})
		return "", errors.Wrap(errors.ErrStorage, err)
	}
	return key, nil
}
