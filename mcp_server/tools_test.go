package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"ocr-translate-api/cmd/defines"
	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/errors"

	"github.com/mark3labs/mcp-go/mcp"
)

type stubTranslator struct {
	gotText, gotSource string
	err                error
}

func (s *stubTranslator) TranslateText(ctx context.Context, text, sourceLang string) (string, error) {
	s.gotText, s.gotSource = text, sourceLang
	if s.err != nil {
		return "", s.err
	}
	return "vi:" + text, nil
}

type stubJobs struct {
	jobs map[int64]*models.Job
	err  error
}

func (s *stubJobs) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	job, ok := s.jobs[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return job, nil
}

func callRequest(name string, args interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestHandleTranslateText(t *testing.T) {
	tr := &stubTranslator{}
	tools := NewTools(tr, &stubJobs{})

	res, err := tools.HandleTranslateText(context.Background(), callRequest("translate_text", map[string]interface{}{
		"text":             "hello",
		"source_nllb_code": "eng_Latn",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if got := resultText(t, res); got != "vi:hello" {
		t.Fatalf("got %q", got)
	}
	if tr.gotSource != "eng_Latn" {
		t.Fatalf("source not forwarded: %q", tr.gotSource)
	}
}

func TestHandleTranslateTextValidation(t *testing.T) {
	tools := NewTools(&stubTranslator{}, &stubJobs{})

	cases := map[string]interface{}{
		"not a map":      "text=hello",
		"missing text":   map[string]interface{}{"source_nllb_code": "eng_Latn"},
		"missing source": map[string]interface{}{"text": "hello"},
		"blank source":   map[string]interface{}{"text": "hello", "source_nllb_code": "  "},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := tools.HandleTranslateText(context.Background(), callRequest("translate_text", args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error")
			}
		})
	}
}

func TestHandleTranslateTextFailure(t *testing.T) {
	tr := &stubTranslator{err: errors.NewTranslationError(stderrors.New("engine unavailable"))}
	tools := NewTools(tr, &stubJobs{})

	res, err := tools.HandleTranslateText(context.Background(), callRequest("translate_text", map[string]interface{}{
		"text":             "hello",
		"source_nllb_code": "eng_Latn",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	if got := resultText(t, res); !strings.Contains(got, "engine unavailable") {
		t.Fatalf("cause missing from %q", got)
	}
}

func TestHandleGetJob(t *testing.T) {
	ocrData := `["hello"]`
	jobs := &stubJobs{jobs: map[int64]*models.Job{
		7: {ID: 7, ImagePath: "abc.jpg", Status: defines.JobStatusComplete, OCRData: &ocrData},
	}}
	tools := NewTools(&stubTranslator{}, jobs)

	res, err := tools.HandleGetJob(context.Background(), callRequest("get_job", map[string]interface{}{"id": float64(7)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var got models.Job
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("invalid job json: %v", err)
	}
	if got.ID != 7 || got.ImagePath != "abc.jpg" || got.Status != defines.JobStatusComplete {
		t.Fatalf("unexpected job %+v", got)
	}
}

func TestHandleGetJobErrors(t *testing.T) {
	tools := NewTools(&stubTranslator{}, &stubJobs{})

	cases := map[string]struct {
		args interface{}
		want string
	}{
		"missing id":  {map[string]interface{}{}, "id parameter is required"},
		"fractional":  {map[string]interface{}{"id": 1.5}, "whole number"},
		"string id":   {map[string]interface{}{"id": "7"}, "unsupported id type"},
		"unknown job": {map[string]interface{}{"id": float64(99)}, "job 99 not found"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := tools.HandleGetJob(context.Background(), callRequest("get_job", tc.args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error")
			}
			if got := resultText(t, res); !strings.Contains(got, tc.want) {
				t.Fatalf("got %q, want substring %q", got, tc.want)
			}
		})
	}
}

func TestHandleGetJobHidesInternalErrors(t *testing.T) {
	jobs := &stubJobs{err: stderrors.New("pq: connection to 10.0.0.5:5432 refused")}
	tools := NewTools(&stubTranslator{}, jobs)

	res, err := tools.HandleGetJob(context.Background(), callRequest("get_job", map[string]interface{}{"id": float64(1)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	got := resultText(t, res)
	if strings.Contains(got, "10.0.0.5") {
		t.Fatalf("internal error leaked to client: %q", got)
	}
	if !strings.Contains(got, errors.ErrInternalServer.Message) {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestParseJobID(t *testing.T) {
	for _, raw := range []interface{}{int(3), int32(3), int64(3), float64(3), json.Number("3")} {
		id, err := parseJobID(raw)
		if err != nil || id != 3 {
			t.Fatalf("parseJobID(%#v) = %d, %v", raw, id, err)
		}
	}
	if _, err := parseJobID(json.Number("x")); err == nil {
		t.Fatalf("expected error for invalid json.Number")
	}
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	srv := NewMCPServer(NewTools(&stubTranslator{}, &stubJobs{}))
	tools := srv.mcpServer.ListTools()
	for _, name := range []string{"translate_text", "get_job"} {
		if _, ok := tools[name]; !ok {
			t.Fatalf("tool %s not registered", name)
		}
	}
}
