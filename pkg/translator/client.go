// Package translator talks to the machine-translation inference server.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ocr-translate-api/cmd/configs"
)

// Translator translates a single piece of text. sourceLang is an NLLB code
// such as "eng_Latn"; empty means the configured default.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang string) (string, error)
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// Client is an HTTP Translator. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
	sourceLang string
	targetLang string
	timeout    time.Duration
}

// NewClient builds a Client. A nil httpClient gets a pooled default without
// an overall timeout; per-call deadlines come from cfg.Timeout or the context.
func NewClient(cfg configs.TranslatorConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		httpClient: httpClient,
		url:        cfg.URL,
		token:      cfg.Token,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		timeout:    cfg.Timeout,
	}
}

// SourceLang returns the language assumed for calls without one.
func (c *Client) SourceLang() string {
	return c.sourceLang
}

// TargetLang returns the language every translation is produced in.
func (c *Client) TargetLang() string {
	return c.targetLang
}

func (c *Client) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	if strings.TrimSpace(sourceLang) == "" {
		sourceLang = c.sourceLang
	}

	body, err := json.Marshal(translateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: c.targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("encode translate request: %w", err)
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("X-Internal-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("translation failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	return parsed.Translation, nil
}
