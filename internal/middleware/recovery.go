package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hacksavvy/pkg/apierror"
)

// Recovery returns a middleware that recovers from panics and logs them.
// The client gets the standard INTERNAL_ERROR envelope.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"user_id", c.GetString("user_id"),
					"stack", string(debug.Stack()),
				)

				apierror.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()

		c.Next()
	}
}
