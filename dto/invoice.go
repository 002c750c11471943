package dto

import "invoiceapi/models"

// InvoiceItemRequest là một dòng hàng trong request tạo invoice
// Mọi trường là con trỏ để "required" chỉ bắt key bị thiếu, 0 và "" vẫn hợp lệ.
type InvoiceItemRequest struct {
	ProductServiceType *string  `json:"product_service_type" binding:"required"`
	Description        *string  `json:"description" binding:"required"`
	UnitPrice          *float64 `json:"unit_price" binding:"required"`
	Quantity           *int     `json:"quantity" binding:"required"`
	Discount           *float64 `json:"discount" binding:"required"`
	VatPercentage      *float64 `json:"vat_percentage" binding:"required"`
}

// CreateInvoiceRequest là DTO cho request tạo invoice
type CreateInvoiceRequest struct {
	InvoiceDate        *string              `json:"invoice_date" binding:"required"`
	CustomerID         *string              `json:"customer_id" binding:"required"`
	DueDate            *string              `json:"due_date" binding:"required"`
	GrossDiscount      *float64             `json:"gross_discount" binding:"required"`
	GrossTotal         *float64             `json:"gross_total" binding:"required"`
	TermsAndConditions *string              `json:"terms_and_conditions" binding:"required"`
	InvoiceItems       []InvoiceItemRequest `json:"invoiceItems" binding:"required,dive"`
}

type InvoiceItemResponse struct {
	ID                 uint    `json:"id"`
	ProductServiceType string  `json:"product_service_type"`
	Description        string  `json:"description"`
	UnitPrice          float64 `json:"unit_price"`
	Quantity           int     `json:"quantity"`
	Discount           float64 `json:"discount"`
	VatPercentage      float64 `json:"vat_percentage"`
}

// InvoiceResponse là DTO cho response của invoice
type InvoiceResponse struct {
	ID                 uint                  `json:"id"`
	InvoiceDate        string                `json:"invoice_date"`
	CustomerID         string                `json:"customer_id"`
	DueDate            string                `json:"due_date"`
	GrossDiscount      float64               `json:"gross_discount"`
	GrossTotal         float64               `json:"gross_total"`
	TermsAndConditions string                `json:"terms_and_conditions"`
	InvoiceItems       []InvoiceItemResponse `json:"invoiceItems"`
}

// ToModel builds the invoice together with its items so they are inserted as one unit.
func (r CreateInvoiceRequest) ToModel() models.Invoice {
	invoice := models.Invoice{
		InvoiceDate:        Value(r.InvoiceDate),
		CustomerID:         Value(r.CustomerID),
		DueDate:            Value(r.DueDate),
		GrossDiscount:      Value(r.GrossDiscount),
		GrossTotal:         Value(r.GrossTotal),
		TermsAndConditions: Value(r.TermsAndConditions),
		Items:              make([]models.InvoiceItem, 0, len(r.InvoiceItems)),
	}
	for _, item := range r.InvoiceItems {
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			ProductServiceType: Value(item.ProductServiceType),
			Description:        Value(item.Description),
			UnitPrice:          Value(item.UnitPrice),
			Quantity:           Value(item.Quantity),
			Discount:           Value(item.Discount),
			VatPercentage:      Value(item.VatPercentage),
		})
	}
	return invoice
}

func NewInvoiceResponse(invoice models.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:                 invoice.ID,
		InvoiceDate:        invoice.InvoiceDate,
		CustomerID:         invoice.CustomerID,
		DueDate:            invoice.DueDate,
		GrossDiscount:      invoice.GrossDiscount,
		GrossTotal:         invoice.GrossTotal,
		TermsAndConditions: invoice.TermsAndConditions,
		InvoiceItems:       make([]InvoiceItemResponse, 0, len(invoice.Items)),
	}
	for _, item := range invoice.Items {
		resp.InvoiceItems = append(resp.InvoiceItems, InvoiceItemResponse{
			ID:                 item.ID,
			ProductServiceType: item.ProductServiceType,
			Description:        item.Description,
			UnitPrice:          item.UnitPrice,
			Quantity:           item.Quantity,
			Discount:           item.Discount,
			VatPercentage:      item.VatPercentage,
		})
	}
	return resp
}

func NewInvoiceResponses(invoices []models.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, NewInvoiceResponse(invoice))
	}
	return out
}
