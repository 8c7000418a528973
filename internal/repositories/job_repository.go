package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/errors"
	"ocr-translate-api/pkg/ocr"
	"ocr-translate-api/pkg/postgres"

	"github.com/jackc/pgx/v5"
)

// JobRepository handles job database operations
type JobRepository struct {
	db *postgres.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *postgres.DB) *JobRepository {
	return &JobRepository{db: db}
}

// CreateSchema creates the job table if it doesn't exist
func (r *JobRepository) CreateSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS job (
			id BIGSERIAL PRIMARY KEY,
			image_path VARCHAR(1024) NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'processing',

			-- JSON-encoded string arrays, one entry per detected region
			ocr_data TEXT,
			translation TEXT,
			box JSONB,

			created_at TIMESTAMP DEFAULT NOW() NOT NULL,
			updated_at TIMESTAMP DEFAULT NOW() NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_job_status ON job(status);
		CREATE INDEX IF NOT EXISTS idx_job_created_at ON job(created_at DESC);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create job table: %w", err)
	}
	return nil
}

const jobColumns = `id, image_path, status, ocr_data, translation, box, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	job := &models.Job{}
	var boxJSON []byte
	err := row.Scan(
		&job.ID,
		&job.ImagePath,
		&job.Status,
		&job.OCRData,
		&job.Translation,
		&boxJSON,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(boxJSON) > 0 {
		if err := json.Unmarshal(boxJSON, &job.Box); err != nil {
			return nil, fmt.Errorf("decode box: %w", err)
		}
	}
	return job, nil
}

// Create inserts a new job in the processing state.
func (r *JobRepository) Create(ctx context.Context, imagePath string) (*models.Job, error) {
	query := `
		INSERT INTO job (image_path, status)
		VALUES ($1, $2)
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query, imagePath, defines.JobStatusProcessing))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Complete stores the pipeline output and moves the job to complete in one statement.
func (r *JobRepository) Complete(ctx context.Context, id int64, result models.JobResult) (*models.Job, error) {
	if result.Len() < 0 {
		return nil, fmt.Errorf("job %d: mismatched result lengths", id)
	}

	texts := result.Texts
	if texts == nil {
		texts = []string{}
	}
	translations := result.Translations
	if translations == nil {
		translations = []string{}
	}
	boxes := result.Boxes
	if boxes == nil {
		boxes = []ocr.Polygon{}
	}

	ocrData, err := encodeJSON(texts)
	if err != nil {
		return nil, fmt.Errorf("encode ocr data: %w", err)
	}
	translation, err := encodeJSON(translations)
	if err != nil {
		return nil, fmt.Errorf("encode translation: %w", err)
	}
	boxJSON, err := json.Marshal(boxes)
	if err != nil {
		return nil, fmt.Errorf("encode box: %w", err)
	}

	query := `
		UPDATE job
		SET ocr_data = $2, translation = $3, box = $4, status = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		id,
		ocrData,
		translation,
		boxJSON,
		defines.JobStatusComplete,
		defines.JobStatusProcessing,
	))
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete job %d: %w", id, err)
	}
	return job, nil
}

// MarkFailed moves a processing job to failed. Result columns are left untouched.
func (r *JobRepository) MarkFailed(ctx context.Context, id int64) error {
	query := `
		UPDATE job
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	tag, err := r.db.Exec(ctx, query, id, defines.JobStatusFailed, defines.JobStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to mark job %d failed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM job WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %d: %w", id, err)
	}
	return job, nil
}
