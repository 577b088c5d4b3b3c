package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"video-profile-extractor/internal/delivery/http/response"
	"video-profile-extractor/pkg/apperror"
	"video-profile-extractor/pkg/logger"
)

// ErrorHandler translates errors pushed via c.Error into the standard JSON
// envelope. Every per-request failure in the pipeline surfaces here as a
// single generic failure signal with a human-readable message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients; log the
				// real error server-side and send a generic message.
				logger.Log.Error("Unhandled request error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
