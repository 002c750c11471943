package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định danh loại lỗi nghiệp vụ
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"

	// Invoice errors
	ErrCodeInvoiceExists ErrorCode = "INVOICE_EXISTS"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Database errors
	ErrCodeDBError    ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound ErrorCode = "DB_NOT_FOUND"

	// Validation errors
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidParam  ErrorCode = "INVALID_PARAM"
)

// AppError is the error type returned by services and validators.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatus maps an error code to the status written to the client.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeRequiredField, ErrCodeInvalidParam, ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	case ErrCodeUserExists, ErrCodeInvoiceExists, ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken:
		return http.StatusUnauthorized
	case ErrCodeDBNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
