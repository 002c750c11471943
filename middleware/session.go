package middleware

import (
	"invoiceapi/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware gán request id cho mỗi request, dùng lại id client gửi lên nếu có
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)

		c.Next()
	}
}
