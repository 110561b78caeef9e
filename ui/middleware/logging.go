package middleware

import (
	"time"

	"interviewprep/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	base := logger.Zap().Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			base.Warn(c.Errors.String(), fields...)
			return
		}
		base.Debug("request", fields...)
	}
}
