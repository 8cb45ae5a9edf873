package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		case errors.Is(err, domain.ErrDuplicate):
			response.Error(c, http.StatusConflict, "Resource already exists", nil)
		default:
			// Never expose internal error details to clients.
			logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
