package services

import (
	"context"
	"fmt"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/errors"
	"ocr-translate-api/pkg/imaging"
	"ocr-translate-api/pkg/ocr"

	fylogger "github.com/FyersDev/trading-logger-go"
)

// ImageService runs the upload, OCR and translation pipeline for one image.
type ImageService struct {
	*BaseService
	limits imaging.Limits
}

func NewImageService(base *BaseService, limits imaging.Limits) *ImageService {
	return &ImageService{BaseService: base, limits: limits}
}

// ProcessImage stores data, records a job and fills it with OCR and
// translation results. A storage failure returns ErrStorage with no job
// created; any later failure marks the job failed and returns ErrProcessing.
func (s *ImageService) ProcessImage(ctx context.Context, data []byte, contentType string) (*models.Job, error) {
	if contentType == "" {
		contentType = defines.DefaultContentType
	}
	key := s.newID() + defines.SourceImageExt

	if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
		fylogger.ErrorLog(ctx, "Storage upload failed", err, map[string]interface{}{"object": key})
		return nil, errors.Wrap(errors.ErrStorage, err)
	}

	job, err := s.jobs.Create(ctx, key)
	if err != nil {
		fylogger.ErrorLog(ctx, "Failed to create job", err, map[string]interface{}{"object": key})
		return nil, errors.Wrap(errors.ErrProcessing, err)
	}

	result, err := s.recognizeAndTranslate(ctx, data)
	if err == nil {
		var done *models.Job
		done, err = s.jobs.Complete(ctx, job.ID, result)
		if err == nil {
			fylogger.InfoLog(ctx, fmt.Sprintf("Job %d complete", job.ID), map[string]interface{}{
				"object":  key,
				"regions": len(result.Texts),
			})
			return done, nil
		}
	}

	fylogger.ErrorLog(ctx, fmt.Sprintf("Job %d processing failed", job.ID), err, map[string]interface{}{"object": key})
	// The request context may already be canceled; the failure must still be recorded.
	if markErr := s.jobs.MarkFailed(context.WithoutCancel(ctx), job.ID); markErr != nil {
		fylogger.ErrorLog(ctx, fmt.Sprintf("Failed to mark job %d failed", job.ID), markErr, nil)
	}
	return nil, errors.Wrap(errors.ErrProcessing, err)
}

// recognizeAndTranslate decodes the image, runs OCR and translates every
// region in engine order, one call at a time.
func (s *ImageService) recognizeAndTranslate(ctx context.Context, data []byte) (models.JobResult, error) {
	prepared, err := imaging.Prepare(data, s.limits)
	if err != nil {
		return models.JobResult{}, err
	}
	fylogger.InfoLog(ctx, "Image prepared for OCR", map[string]interface{}{
		"format": prepared.Format,
		"width":  prepared.Width,
		"height": prepared.Height,
		"scale":  prepared.Scale,
	})

	regions, err := s.engine.Recognize(ctx, prepared.PNG)
	if err != nil {
		return models.JobResult{}, fmt.Errorf("%s: %w", s.engine.Name(), err)
	}

	result := models.JobResult{
		Texts:        make([]string, 0, len(regions)),
		Translations: make([]string, 0, len(regions)),
		Boxes:        make([]ocr.Polygon, 0, len(regions)),
	}
	for i, r := range regions {
		translated, err := s.translator.Translate(ctx, r.Text, "")
		if err != nil {
			return models.JobResult{}, fmt.Errorf("translate region %d: %w", i, err)
		}
		box := r.Polygon
		if prepared.Scale != 1.0 {
			box = box.Scale(1 / prepared.Scale)
		}
		result.Texts = append(result.Texts, r.Text)
		result.Translations = append(result.Translations, translated)
		result.Boxes = append(result.Boxes, box)
	}
	return result, nil
}

// GetJob returns a job by id.
func (s *ImageService) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}
