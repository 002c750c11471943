package validator

import (
	"strconv"
	"strings"

	"invoiceapi/dto"
	"invoiceapi/errors"
)

// ValidateRegister kiểm tra các trường bắt buộc khi đăng ký
func ValidateRegister(input *dto.RegisterInput) error {
	if strings.TrimSpace(dto.Value(input.Name)) == "" ||
		strings.TrimSpace(dto.Value(input.Email)) == "" ||
		dto.Value(input.Password) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Invalid input data", nil)
	}
	return nil
}

// ValidateInvoiceItems rejects any line with a negative unit price or quantity.
func ValidateInvoiceItems(items []dto.InvoiceItemRequest) error {
	for _, item := range items {
		if dto.Value(item.UnitPrice) < 0 || dto.Value(item.Quantity) < 0 {
			return errors.NewAppError(errors.ErrCodeInvalidAmount, "Unit price and quantity must be non-negative", nil)
		}
	}
	return nil
}

// ParseInvoiceID parses a path id, which must be an integer >= 1 that fits a
// bigint column.
func ParseInvoiceID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id < 1 {
		return 0, errors.NewAppError(errors.ErrCodeInvalidParam, "Invalid invoice id", err)
	}
	return uint(id), nil
}

// NormalizeEmail lowercases and trims an email before lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
