package middleware

import (
	"strings"

	"invoiceapi/constants"
	apperr "invoiceapi/errors"
	"invoiceapi/response"
	"invoiceapi/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication bằng bearer token
func AuthMiddleware(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			abort(c, apperr.NewAppError(apperr.ErrCodeMissingToken, "Not authenticated", nil))
			return
		}

		user, err := users.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(constants.ContextUserID, user.ID)
		c.Next()
	}
}

// BearerToken lấy token từ header Authorization
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	response.AppError(c, err)
	c.Abort()
}
