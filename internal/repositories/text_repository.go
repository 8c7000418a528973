package repositories

import (
	"context"
	"fmt"

	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/postgres"
)

// TextRepository handles direct-translation records
type TextRepository struct {
	db *postgres.DB
}

func NewTextRepository(db *postgres.DB) *TextRepository {
	return &TextRepository{db: db}
}

// CreateSchema creates the text table if it doesn't exist
func (r *TextRepository) CreateSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS text (
			id BIGSERIAL PRIMARY KEY,
			ocr_data TEXT NOT NULL,
			translation TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW() NOT NULL
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create text table: %w", err)
	}
	return nil
}

// Create records one translation.
func (r *TextRepository) Create(ctx context.Context, ocrData, translation string) (*models.Text, error) {
	query := `
		INSERT INTO text (ocr_data, translation)
		VALUES ($1, $2)
		RETURNING id, ocr_data, translation, created_at
	`

	t := &models.Text{}
	err := r.db.QueryRow(ctx, query, ocrData, translation).Scan(
		&t.ID,
		&t.OCRData,
		&t.Translation,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create text: %w", err)
	}
	return t, nil
}
