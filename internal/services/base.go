package services

import (
	"context"

	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/imaging"
	"ocr-translate-api/pkg/ocr"
	"ocr-translate-api/pkg/translator"

	"github.com/google/uuid"
)

// JobStore persists image processing jobs.
type JobStore interface {
	Create(ctx context.Context, imagePath string) (*models.Job, error)
	Complete(ctx context.Context, id int64, result models.JobResult) (*models.Job, error)
	MarkFailed(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

// TextStore persists direct translation records.
type TextStore interface {
	Create(ctx context.Context, ocrData, translation string) (*models.Text, error)
}

// BlobStore writes raw uploads to object storage.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Pinger is anything the health endpoint can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BaseService carries the dependencies shared by the request services
type BaseService struct {
	jobs       JobStore
	texts      TextStore
	blobs      BlobStore
	engine     ocr.Engine
	translator translator.Translator
	newID      func() string
}

// NewBaseService creates a new base service with the required dependencies
func NewBaseService(
	jobs JobStore,
	texts TextStore,
	blobs BlobStore,
	engine ocr.Engine,
	tr translator.Translator,
) *BaseService {
	return &BaseService{
		jobs:       jobs,
		texts:      texts,
		blobs:      blobs,
		engine:     engine,
		translator: tr,
		newID:      func() string { return uuid.New().String() },
	}
}

// Services holds all service instances
type Services struct {
	base        *BaseService
	Health      *HealthService
	Image       *ImageService
	Upload      *UploadService
	Translation *TranslationService
}

// NewServices wires the request services over a shared base.
func NewServices(base *BaseService, health *HealthService, limits imaging.Limits) *Services {
	return &Services{
		base:        base,
		Health:      health,
		Image:       NewImageService(base, limits),
		Upload:      NewUploadService(base),
		Translation: NewTranslationService(base),
	}
}
