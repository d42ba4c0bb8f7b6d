package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/config"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/logger"
)

// ErrorHandler writes the response for the last error a handler recorded with
// c.Error. Only the request logger may be registered ahead of it.
func ErrorHandler(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		HandleAPIError(c, c.Errors.Last().Err, mode != config.ModeTest)
	}
}

// HandleAPIError maps err to a status code and writes the error body.
// Unexpected errors become a 500 whose cause is only logged.
func HandleAPIError(c *gin.Context, err error, logUnexpected bool) {
	status := StatusFor(err)
	message := apperrors.Message(err, http.StatusText(status))

	if status == http.StatusInternalServerError {
		message = "Internal Server Error"
		if logUnexpected {
			logger.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("Unhandled error")
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, message, apperrors.Details(err)))
}

// StatusFor returns the HTTP status for an error kind
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Recovery turns a panic into a 500 handled by ErrorHandler
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		abortWithError(c, fmt.Errorf("panic recovered: %v", recovered))
	})
}

// NotFound is the handler for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, apperrors.NewNotFoundError("Not Found"))
	}
}
