package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"ocr-translate-api/pkg/postgres"
)

// Repositories holds all repository instances
type Repositories struct {
	Job  *JobRepository
	Text *TextRepository
}

// NewRepositories creates and returns all repository instances
func NewRepositories(db *postgres.DB) *Repositories {
	return &Repositories{
		Job:  NewJobRepository(db),
		Text: NewTextRepository(db),
	}
}

// CreateSchema creates every table the service writes to.
func (r *Repositories) CreateSchema(ctx context.Context) error {
	if err := r.Job.CreateSchema(ctx); err != nil {
		return fmt.Errorf("job schema: %w", err)
	}
	if err := r.Text.CreateSchema(ctx); err != nil {
		return fmt.Errorf("text schema: %w", err)
	}
	return nil
}

// encodeJSON marshals v without HTML escaping so non-ASCII and markup
// characters are stored as written.
func encodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
