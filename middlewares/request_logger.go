package middlewares

import (
	"log/slog"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once it finishes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))

		start := time.Now()
		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			log.Error(ctx, "http_request", "request failed", nil, attrs...)
		case c.Writer.Status() >= 400:
			log.Warn(ctx, "http_request", "request rejected", attrs...)
		default:
			log.Info(ctx, "http_request", "request served", attrs...)
		}
	}
}
