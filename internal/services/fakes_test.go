package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/internal/models"
	apperrors "ocr-translate-api/pkg/errors"
	"ocr-translate-api/pkg/ocr"
)

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.objects[key] = append([]byte(nil), data...)
	f.types[key] = contentType
	return nil
}

type fakeJobs struct {
	mu          sync.Mutex
	nextID      int64
	jobs        map[int64]*models.Job
	createErr   error
	completeErr error
	markCtxErr  error
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: map[int64]*models.Job{}}
}

func (f *fakeJobs) Create(ctx context.Context, imagePath string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	job := &models.Job{ID: f.nextID, ImagePath: imagePath, Status: defines.JobStatusProcessing}
	f.jobs[job.ID] = job
	cp := *job
	return &cp, nil
}

func (f *fakeJobs) Complete(ctx context.Context, id int64, result models.JobResult) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	job, ok := f.jobs[id]
	if !ok || job.Status != defines.JobStatusProcessing {
		return nil, apperrors.ErrNotFound
	}
	ocrData := fmt.Sprintf("%q", result.Texts)
	translation := fmt.Sprintf("%q", result.Translations)
	job.OCRData = &ocrData
	job.Translation = &translation
	job.Box = result.Boxes
	job.Status = defines.JobStatusComplete
	cp := *job
	return &cp, nil
}

func (f *fakeJobs) MarkFailed(ctx context.Context, id int64) error {
	f.markCtxErr = ctx.Err()
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok || job.Status != defines.JobStatusProcessing {
		return apperrors.ErrNotFound
	}
	job.Status = defines.JobStatusFailed
	return nil
}

func (f *fakeJobs) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

type fakeTexts struct {
	rows []models.Text
	err  error
}

func (f *fakeTexts) Create(ctx context.Context, ocrData, translation string) (*models.Text, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := models.Text{ID: int64(len(f.rows) + 1), OCRData: ocrData, Translation: translation}
	f.rows = append(f.rows, t)
	return &t, nil
}

type fakeEngine struct {
	regions []ocr.Region
	err     error
	calls   int
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(ctx context.Context, img []byte) ([]ocr.Region, error) {
	f.calls++
	return f.regions, f.err
}

// fakeTranslator prefixes the input and can fail on a given text.
type fakeTranslator struct {
	failOn  string
	calls   []string
	sources []string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	f.calls = append(f.calls, text)
	f.sources = append(f.sources, sourceLang)
	if f.failOn != "" && text == f.failOn {
		return "", errors.New("model unavailable")
	}
	return "vi:" + text, nil
}

func sampleJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

type deps struct {
	blobs      *fakeBlobs
	jobs       *fakeJobs
	texts      *fakeTexts
	engine     *fakeEngine
	translator *fakeTranslator
	base       *BaseService
}

func newDeps() *deps {
	d := &deps{
		blobs:      newFakeBlobs(),
		jobs:       newFakeJobs(),
		texts:      &fakeTexts{},
		engine:     &fakeEngine{},
		translator: &fakeTranslator{},
	}
	d.base = NewBaseService(d.jobs, d.texts, d.blobs, d.engine, d.translator)
	return d
}
