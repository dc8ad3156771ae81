package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/apperror"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

// ErrorMiddleware turns errors collected on the gin context into JSON
// responses. Validation failures additionally carry the per-field error map;
// the top-level message stays the first failing check.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			log.Error("Unhandled error", err, zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   apperror.ErrInternal.Error(),
				"message": "An internal server error occurred",
			})
			return
		}

		status := apperror.ToHTTPStatus(appErr)
		body := appErr.ToJSON()

		var valErr *profile.ValidationError
		if errors.As(appErr.Err, &valErr) {
			body["errors"] = valErr.Result.ByField()
		}

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", appErr, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
		} else {
			log.Warn("Request rejected", zap.String("path", c.Request.URL.Path), zap.Int("status", status), zap.String("reason", appErr.Message))
		}

		c.JSON(status, body)
	}
}
