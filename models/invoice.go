package models

import (
	"time"
)

type Invoice struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	InvoiceDate        string        `json:"invoiceDate" gorm:"uniqueIndex;not null"` // chuỗi tự do, không parse
	CustomerID         string        `json:"customerId" gorm:"index"`
	DueDate            string        `json:"dueDate"`
	GrossDiscount      float64       `json:"grossDiscount"`
	GrossTotal         float64       `json:"grossTotal"`
	TermsAndConditions string        `json:"termsAndConditions"`
	Items              []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// InvoiceItem is a line of an invoice. Items only exist through their invoice.
type InvoiceItem struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	InvoiceID          uint    `json:"invoiceId" gorm:"index;not null"`
	ProductServiceType string  `json:"productServiceType" gorm:"index"`
	Description        string  `json:"description"`
	UnitPrice          float64 `json:"unitPrice"`
	Quantity           int     `json:"quantity"`
	Discount           float64 `json:"discount"`
	VatPercentage      float64 `json:"vatPercentage"`
}

// All lists the models owned by this service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Invoice{},
		&InvoiceItem{},
	}
}
