package tesseract

import (
	"context"
	"fmt"
	"strings"

	"ocr-translate-api/cmd/configs"
	"ocr-translate-api/pkg/ocr"

	"github.com/otiai10/gosseract/v2"
)

// Engine implements ocr.Engine on top of gosseract. A gosseract client is
// not safe for concurrent use, so one is created per call.
type Engine struct {
	clientFactory  func() *gosseract.Client
	languages      []string
	tessdataPrefix string
	pageSegMode    int
}

// NewEngine constructs a Tesseract-backed OCR engine.
func NewEngine(cfg configs.OCRConfig) *Engine {
	var langs []string
	for _, l := range strings.Split(cfg.Language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &Engine{
		clientFactory:  gosseract.NewClient,
		languages:      langs,
		tessdataPrefix: cfg.TessdataPrefix,
		pageSegMode:    cfg.PageSegMode,
	}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize returns one region per detected text line.
func (e *Engine) Recognize(ctx context.Context, img []byte) ([]ocr.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := e.clientFactory()
	defer c.Close()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if e.pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.pageSegMode)); err != nil {
			return nil, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}
	return toRegions(boxes), nil
}

func toRegions(boxes []gosseract.BoundingBox) []ocr.Region {
	regions := make([]ocr.Region, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		regions = append(regions, ocr.Region{
			Polygon:    ocr.RectPolygon(b.Box),
			Text:       text,
			Confidence: b.Confidence / 100.0,
		})
	}
	return regions
}
