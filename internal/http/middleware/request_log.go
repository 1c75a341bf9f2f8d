package middleware

import (
	"time"

	"tasks_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped slog logger to the request context
// and logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		log := logger.With("request_id", reqID, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(logger.IntoContext(c.Request.Context(), log))

		c.Next()

		status := c.Writer.Status()
		args := []any{"status", status, "latency", time.Since(start), "client_ip", c.ClientIP()}
		switch {
		case status >= 500:
			log.Error("request", args...)
		case status >= 400:
			log.Warn("request", args...)
		default:
			log.Info("request", args...)
		}
	}
}
