package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs each request through slog with a request ID that is
// also echoed back to the client
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		attrs := []any{
			slog.String("request_id", shortRequestID(requestID)),
			slog.String("method", c.Request.Method),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("path", path),
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", attrs...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}

		for _, e := range c.Errors {
			logger.Error("request error",
				slog.String("request_id", shortRequestID(requestID)),
				slog.Any("error", e.Err),
			)
		}
	}
}

// shortRequestID truncates long request IDs for log lines. The header is
// client-supplied and may be arbitrarily short.
func shortRequestID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
