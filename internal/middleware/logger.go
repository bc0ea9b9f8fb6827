package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tutorhub/internal/pkg/identity"
	"tutorhub/internal/pkg/response"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// RequestLogger writes one structured line per request and turns panics into
// a 500 envelope.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					append(requestAttrs(c, start), "panic", fmt.Sprint(recovered), "stack", string(debug.Stack()))...)
				response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
				c.Abort()
				return
			}

			attrs := requestAttrs(c, start)
			status := c.Writer.Status()
			switch {
			case status >= http.StatusInternalServerError || len(c.Errors) > 0:
				if len(c.Errors) > 0 {
					attrs = append(attrs, "errors", c.Errors.String())
				}
				logger.ErrorContext(c.Request.Context(), "request failed", attrs...)
			case status >= http.StatusBadRequest:
				logger.WarnContext(c.Request.Context(), "request rejected", attrs...)
			default:
				logger.InfoContext(c.Request.Context(), "request", attrs...)
			}
		}()

		c.Next()
	}
}

func requestAttrs(c *gin.Context, start time.Time) []any {
	attrs := []any{
		"request_id", RequestIDFrom(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	}
	if id, ok := identity.FromContext(c); ok {
		attrs = append(attrs, "profile_id", id.ProfileID, "role", id.Role)
	}
	return attrs
}
