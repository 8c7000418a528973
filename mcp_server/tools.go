package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/errors"

	"github.com/mark3labs/mcp-go/mcp"
)

// TextTranslator translates text and records the pair, same as POST /translate-text/.
type TextTranslator interface {
	TranslateText(ctx context.Context, text, sourceLang string) (string, error)
}

// JobReader loads a stored OCR job.
type JobReader interface {
	GetJob(ctx context.Context, id int64) (*models.Job, error)
}

// TranslateTextTool defines the MCP tool for text translation
var TranslateTextTool = mcp.Tool{
	Name: "translate_text",
	Description: `Translate a piece of text with the service's translation engine.

The source language is an NLLB code such as 'eng_Latn', 'jpn_Jpan' or 'kor_Hang'.
The target language is fixed by the server configuration.
Every successful call is stored in the text history.`,
	InputSchema: mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The text to translate.",
			},
			"source_nllb_code": map[string]interface{}{
				"type":        "string",
				"description": "NLLB language code of the source text, e.g. 'eng_Latn'.",
			},
		},
		Required: []string{"text", "source_nllb_code"},
	},
}

// GetJobTool defines the MCP tool for reading OCR job results
var GetJobTool = mcp.Tool{
	Name: "get_job",
	Description: `Fetch an OCR job by id.

Returns the job as JSON: status (processing, complete or failed), the stored image
object name, and for complete jobs the recognized texts, their translations and the
polygon of each text region.`,
	InputSchema: mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "integer",
				"description": "The job id returned by POST /process-image/.",
			},
		},
		Required: []string{"id"},
	},
}

// Tools holds the services the MCP tool handlers call into.
type Tools struct {
	translator TextTranslator
	jobs       JobReader
}

func NewTools(translator TextTranslator, jobs JobReader) *Tools {
	return &Tools{translator: translator, jobs: jobs}
}

// parseJobID normalizes the "id" argument. JSON numbers arrive as float64.
func parseJobID(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("id must be a whole number, got %v", v)
		}
		return int64(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid id value %q: %w", v, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("unsupported id type %T", raw)
	}
}

// HandleTranslateText handles the translate_text tool call
func (t *Tools) HandleTranslateText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	text, ok := argsMap["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	source, ok := argsMap["source_nllb_code"].(string)
	if !ok || strings.TrimSpace(source) == "" {
		return mcp.NewToolResultError("source_nllb_code parameter is required"), nil
	}

	translated, err := t.translator.TranslateText(ctx, text, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("translation failed: %s", errorDetail(err))), nil
	}

	return mcp.NewToolResultText(translated), nil
}

// HandleGetJob handles the get_job tool call
func (t *Tools) HandleGetJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	rawID, ok := argsMap["id"]
	if !ok {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := parseJobID(rawID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id parameter: %v", err)), nil
	}

	job, err := t.jobs.GetJob(ctx, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("job %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to load job: %s", errorDetail(err))), nil
	}

	jsonBytes, err := json.Marshal(job)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal job: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// errorDetail returns the client-facing message of an AppError. Any other
// error is reported as a generic internal error, as the HTTP API does.
func errorDetail(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return errors.ErrInternalServer.Message
}
