package constants

// Keys used with gin.Context Set/Get
const (
	ContextUserID    = "userID"
	ContextRequestID = "requestId"
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Redis keys for the invoice list cache. Lists are stored under
// InvoiceListCacheKey + ":" + generation.
const (
	InvoiceListCacheKey      = "invoices:all"
	InvoiceListGenerationKey = "invoices:gen"
)
