package middleware

import (
	"context"
	stderrors "errors"
	"net/http"

	"ocr-translate-api/pkg/errors"

	fylogger "github.com/FyersDev/trading-logger-go"
	"github.com/gin-gonic/gin"
)

var logError = func(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	fylogger.ErrorLog(ctx, msg, err, fields)
}

// ErrorMiddleware renders the last error attached with c.Error as a
// {"detail": ...} body. AppError causes are logged, never returned.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			if appErr.Err != nil {
				logError(c.Request.Context(), "Request failed", appErr.Err, map[string]interface{}{
					"path": c.Request.URL.Path,
					"code": appErr.Code,
				})
			}
			c.JSON(appErr.Status, errors.Response(appErr))
			return
		}

		// Generic error
		logError(c.Request.Context(), "Unhandled request error", err, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		c.JSON(http.StatusInternalServerError, errors.Response(errors.ErrInternalServer))
	}
}
