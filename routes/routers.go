package routes

import (
	"net/http"

	"invoiceapi/controllers"
	_ "invoiceapi/docs"
	middlewares "invoiceapi/middleware"
	"invoiceapi/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies gom các service mà route table cần
type Dependencies struct {
	Users    *services.UserService
	Invoices *services.InvoiceService
	Metrics  prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authController := controllers.NewAuthController(deps.Users)
	invoiceController := controllers.NewInvoiceController(deps.Invoices)

	router.POST("/users/store", authController.RegisterUser)
	router.POST("/login/", authController.Login)
	router.GET("/users/me", middlewares.AuthMiddleware(deps.Users), authController.GetProfile)

	router.POST("/invoice/store", invoiceController.CreateInvoice)
	router.GET("/invoices/", invoiceController.GetInvoices)
	router.GET("/invoices/:id", invoiceController.GetDetailInvoice)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
