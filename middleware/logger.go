package middleware

import (
	"net/http"
	"time"

	"invoiceapi/constants"
	"invoiceapi/services/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. Errors recorded on the context are
// only logged for 5xx responses.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		reqLog := log.With("request_id", c.GetString(constants.ContextRequestID))
		if status >= http.StatusInternalServerError {
			reqLog.Error("%s %s %d %s: %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.Errors.String())
			return
		}
		reqLog.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
