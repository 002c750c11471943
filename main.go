package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoiceapi/config"
	"invoiceapi/routes"
	"invoiceapi/services"
	"invoiceapi/services/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title        Invoice API
// @version      1.0
// @description  User registration/login and invoice management.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel), cfg.IsDev())

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	if cfg.DatabaseAutoMigrate {
		if err := config.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate tables: %v", err)
		}
	}

	ctx := context.Background()
	redisClient, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		// cache là tuỳ chọn, tiếp tục chạy không có cache
		appLogger.Error("redis unavailable, invoice cache disabled: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	userService := services.NewUserService(services.UserServiceOptions{
		DB:     db,
		Logger: appLogger,
		Tokens: services.NewTokenService(cfg.AuthSecretKey, cfg.TokenTTL()),
	})
	invoiceService := services.NewInvoiceService(services.InvoiceServiceOptions{
		DB:       db,
		Redis:    redisClient,
		CacheTTL: cfg.RedisCacheTTL,
		Logger:   appLogger,
	})

	router := config.NewRouter(cfg, appLogger, reg)
	routes.SetupRoutes(router, routes.Dependencies{
		Users:    userService,
		Invoices: invoiceService,
		Metrics:  reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	appLogger.Info("server stopped")
}
