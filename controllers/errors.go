package controllers

import (
	apperr "invoiceapi/errors"
	"invoiceapi/response"

	"github.com/gin-gonic/gin"
)

// abortWithError records err on the context for the logging middleware and
// writes the mapped error response.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.AppError(c, err)
	c.Abort()
}

// abortWithBindError answers 422 for a body that is malformed or misses a
// required key.
func abortWithBindError(c *gin.Context, err error) {
	abortWithError(c, apperr.NewAppError(apperr.ErrCodeInvalidFormat, "Invalid input data", err))
}
