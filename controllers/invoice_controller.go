package controllers

import (
	"invoiceapi/dto"
	"invoiceapi/response"
	"invoiceapi/services"
	"invoiceapi/validator"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) InvoiceController {
	return InvoiceController{Invoices: invoices}
}

// CreateInvoice godoc
// @Summary  Create an invoice with its items
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateInvoiceRequest true "invoice"
// @Success  200 {object} response.Response{data=dto.InvoiceResponse}
// @Failure  400 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /invoice/store [post]
func (ic InvoiceController) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	invoice, err := ic.Invoices.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.Success(c, dto.NewInvoiceResponse(invoice))
}

// GetInvoices godoc
// @Summary  List invoices
// @Tags     invoices
// @Produce  json
// @Success  200 {object} response.ResponseTotal{data=[]dto.InvoiceResponse}
// @Router   /invoices/ [get]
func (ic InvoiceController) GetInvoices(c *gin.Context) {
	invoices, err := ic.Invoices.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.SuccessWithTotal(c, dto.NewInvoiceResponses(invoices), len(invoices))
}

// GetDetailInvoice godoc
// @Summary  Get an invoice by id
// @Tags     invoices
// @Produce  json
// @Param    id path int true "invoice id" minimum(1)
// @Success  200 {object} response.Response{data=dto.InvoiceResponse}
// @Failure  404 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /invoices/{id} [get]
func (ic InvoiceController) GetDetailInvoice(c *gin.Context) {
	id, err := validator.ParseInvoiceID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	invoice, err := ic.Invoices.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.Success(c, dto.NewInvoiceResponse(invoice))
}
