package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWithMeta is used by paginated lists.
func SuccessWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError maps the core's error taxonomy onto HTTP.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	Error(c, status, code, apperr.MessageOf(err))
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperr.ErrAccessDenied):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, apperr.ErrInvalidState):
		return http.StatusUnprocessableEntity, "INVALID_STATE"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
