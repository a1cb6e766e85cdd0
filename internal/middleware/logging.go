package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/pkg/logger"
)

// LoggingMiddleware logs every request with timing and the authenticated
// subject when present.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		subject := ""
		if v, ok := c.Get("subject"); ok {
			subject, _ = v.(string)
		}

		event := logger.Log.Info()
		if status >= 400 {
			event = logger.Log.Warn()
		}
		if status >= 500 {
			event = logger.Log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", rawQuery).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("subject", subject).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}
