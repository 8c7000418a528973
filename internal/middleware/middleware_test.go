package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "ocr-translate-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeDetail(t *testing.T, body io.Reader) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func TestErrorMiddlewareRendersAppError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.Error(apperrors.Wrap(apperrors.ErrStorage, errors.New("dial tcp: refused")))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	resp := decodeDetail(t, w.Body)
	if resp.Detail != "Storage upload failed" {
		t.Fatalf("unexpected detail: %q", resp.Detail)
	}
	if strings.Contains(w.Body.String(), "refused") {
		t.Fatalf("cause leaked to client: %s", w.Body.String())
	}
}

func captureLogs(t *testing.T) *[]error {
	t.Helper()
	var logged []error
	prev := logError
	logError = func(ctx context.Context, msg string, err error, fields map[string]interface{}) {
		logged = append(logged, err)
	}
	t.Cleanup(func() { logError = prev })
	return &logged
}

func TestErrorMiddlewareLogsAppErrorCause(t *testing.T) {
	logged := captureLogs(t)
	cause := errors.New("dial tcp: refused")

	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/wrapped", func(c *gin.Context) {
		c.Error(apperrors.Wrap(apperrors.ErrStorage, cause))
	})
	r.GET("/bare", func(c *gin.Context) {
		c.Error(apperrors.ErrNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wrapped", nil))
	if len(*logged) != 1 || !errors.Is((*logged)[0], cause) {
		t.Fatalf("expected the cause to be logged once, got %v", *logged)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bare", nil))
	if len(*logged) != 1 {
		t.Fatalf("errors without a cause should not be logged, got %v", *logged)
	}
}

func TestErrorMiddlewareGenericError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.Error(errors.New("something odd"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if resp := decodeDetail(t, w.Body); resp.Detail != "Internal server error" {
		t.Fatalf("unexpected detail: %q", resp.Detail)
	}
}

func TestErrorMiddlewareLeavesWrittenResponses(t *testing.T) {
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"detail": "already handled"})
		c.Error(errors.New("late"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/translate-text/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/translate-text/", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(4))
	r.POST("/x", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("012")))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}
