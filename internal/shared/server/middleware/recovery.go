package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 error envelope. Nothing is written
// when the handler already sent its headers.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.IncHTTPPanic()
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      rec,
				"stack":      string(debug.Stack()),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}
