package errors

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped instances compare equal to the predefined values.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Predefined errors
var (
	ErrNotFound = &AppError{
		Code:    "NOT_FOUND",
		Message: "Resource not found",
		Status:  http.StatusNotFound,
	}

	ErrBadRequest = &AppError{
		Code:    "BAD_REQUEST",
		Message: "Invalid request",
		Status:  http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
	}

	ErrPayloadTooLarge = &AppError{
		Code:    "PAYLOAD_TOO_LARGE",
		Message: "Upload exceeds the size limit",
		Status:  http.StatusRequestEntityTooLarge,
	}

	ErrInternalServer = &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}

	// ErrStorage: object-store write failed, nothing was recorded.
	ErrStorage = &AppError{
		Code:    "STORAGE_ERROR",
		Message: "Storage upload failed",
		Status:  http.StatusInternalServerError,
	}

	// ErrProcessing: decode/OCR/translate/persist failed after the job row exists.
	ErrProcessing = &AppError{
		Code:    "PROCESSING_ERROR",
		Message: "Processing failed",
		Status:  http.StatusInternalServerError,
	}

	// ErrTranslation carries the cause's text as its message, see NewTranslationError.
	ErrTranslation = &AppError{
		Code:    "TRANSLATION_ERROR",
		Message: "Translation failed",
		Status:  http.StatusInternalServerError,
	}
)

func NewError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

func WrapError(err error, code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap copies a predefined error and attaches the cause.
func Wrap(base *AppError, err error) *AppError {
	return WrapError(err, base.Code, base.Message, base.Status)
}

// NewTranslationError exposes the raw cause to the caller. The direct translation
// endpoint has always returned the underlying message, unlike the image pipeline.
func NewTranslationError(err error) *AppError {
	msg := ErrTranslation.Message
	if err != nil {
		msg = err.Error()
	}
	return WrapError(err, ErrTranslation.Code, msg, ErrTranslation.Status)
}

// ErrorResponse is a common error response format
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error,omitempty"`
}

// Response renders an AppError for the client. The cause is never included.
func Response(e *AppError) ErrorResponse {
	return ErrorResponse{
		Detail: e.Message,
		Error:  e.Code,
	}
}
