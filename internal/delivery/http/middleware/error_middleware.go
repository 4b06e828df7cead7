package middleware

import (
	"errors"
	"net/http"

	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single translation point from typed service failures
// to HTTP responses. Handlers append errors to the gin context instead of
// writing ad hoc responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("Internal server error", "error", appErr.Err, "path", c.FullPath())
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side and send a generic message.
				logger.Log.Error("Unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "Произошла непредвиденная ошибка. Попробуйте позже.", nil)
			}
		}
	}
}
