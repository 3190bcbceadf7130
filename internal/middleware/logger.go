// Package middleware provides HTTP middleware functions.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPrefixes are logged at debug level when they succeed.
var quietPrefixes = []string{"/health", "/uploads/"}

// Logger returns a middleware that logs HTTP requests.
// The authenticated user id is included when the auth middleware set one.
func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		// access_token is a credential; never log the raw query on the callback
		if raw != "" && !strings.HasPrefix(path, "/auth/") {
			fields = append(fields, "query", raw)
		}

		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		if c.Writer.Size() > 0 {
			fields = append(fields, "size", c.Writer.Size())
		}

		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Errorw("HTTP request", fields...)
		case status >= 400:
			logger.Warnw("HTTP request", fields...)
		case isQuiet(path):
			logger.Debugw("HTTP request", fields...)
		default:
			logger.Infow("HTTP request", fields...)
		}
	}
}

func isQuiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
