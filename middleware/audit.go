package middleware

import (
	"github.com/gin-gonic/gin"
)

// AuditSink is where the audit middleware ships request entries.
// Implementations must not block.
type AuditSink interface {
	Log(traceID, endpoint, method string, statusCode int, message string)
}

// AuditMiddleware emits one structured entry per handled request to the
// service log sink, after the response is written.
func AuditMiddleware(sink AuditSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		message := ""
		if len(c.Errors) > 0 {
			message = c.Errors.String()
		}

		sink.Log(
			GetTraceID(c.Request.Context()),
			endpoint,
			c.Request.Method,
			c.Writer.Status(),
			message,
		)
	}
}
