package models

import (
	"time"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/pkg/ocr"
)

// Job is one /process-image/ request and its outcome.
// OCRData and Translation hold JSON-encoded string arrays; together with Box
// they are set only when Status is complete, and then have equal length.
type Job struct {
	ID          int64             `json:"id"`
	ImagePath   string            `json:"image_path"`
	Status      defines.JobStatus `json:"status"`
	OCRData     *string           `json:"ocr_data"`
	Translation *string           `json:"translation"`
	Box         []ocr.Polygon     `json:"box"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Text is one direct translation request. Immutable once written.
type Text struct {
	ID          int64     `json:"id"`
	OCRData     string    `json:"ocr_data"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobResult is what the pipeline hands to the store on success.
type JobResult struct {
	Texts        []string
	Translations []string
	Boxes        []ocr.Polygon
}

// Len reports the region count, or -1 when the arrays disagree.
func (r JobResult) Len() int {
	n := len(r.Texts)
	if len(r.Translations) != n || len(r.Boxes) != n {
		return -1
	}
	return n
}

// Request/Response models

type TranslateTextRequest struct {
	Text           *string `json:"text" binding:"required"`
	SourceNLLBCode *string `json:"source_nllb_code" binding:"required"`
	OCRLangCode    string  `json:"ocr_lang_code"`
}

type TranslateTextResponse struct {
	TranslatedText string `json:"translated_text"`
}

type UploadTranslatedImageResponse struct {
	ObjectName string `json:"object_name"`
}
