package response

import (
	"net/http"

	apperr "invoiceapi/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

type ResponseTotal struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Total int         `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func SuccessWithTotal(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, ResponseTotal{
		Code:  1,
		Mess:  "Success",
		Total: total,
		Data:  data,
	})
}

// Error writes an error envelope with an explicit status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// AppError writes err with the status mapped from its code. Errors that are
// not *AppError become a 500.
func AppError(c *gin.Context, err error) {
	appErr := apperr.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := apperr.HTTPStatus(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	Error(c, status, appErr.Message)
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
