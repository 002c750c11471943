package config

import (
	"invoiceapi/middleware"
	"invoiceapi/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter tạo gin engine với CORS và các middleware chung
func NewRouter(cfg *Config, log logger.Logger, reg prometheus.Registerer) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		configCors.AllowAllOrigins = true
	} else {
		configCors.AllowOrigins = origins
		configCors.AllowCredentials = true
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	if reg != nil {
		router.Use(middleware.Metrics(reg))
	}
	return router
}
