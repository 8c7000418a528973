package services

import (
	"context"

	"ocr-translate-api/pkg/errors"

	fylogger "github.com/FyersDev/trading-logger-go"
)

type TranslationService struct {
	*BaseService
}

func NewTranslationService(base *BaseService) *TranslationService {
	return &TranslationService{BaseService: base}
}

// TranslateText translates text and records the pair. Failures carry the
// underlying error message back to the caller.
func (s *TranslationService) TranslateText(ctx context.Context, text, sourceLang string) (string, error) {
	translated, err := s.translator.Translate(ctx, text, sourceLang)
	if err != nil {
		fylogger.ErrorLog(ctx, "Translation failed", err, map[string]interface{}{"source_lang": sourceLang})
		return "", errors.NewTranslationError(err)
	}

	if _, err := s.texts.Create(ctx, text, translated); err != nil {
		fylogger.ErrorLog(ctx, "Failed to record translation", err, nil)
		return "", errors.NewTranslationError(err)
	}
	return translated, nil
}
