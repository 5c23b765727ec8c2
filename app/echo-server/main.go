package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "klontong/app/echo-server/metrics"
	"klontong/app/echo-server/router"
	"klontong/business/auditlog"
	"klontong/business/category"
	"klontong/business/checkout"
	"klontong/business/product"
	"klontong/business/upload"
	"klontong/domain"
	"klontong/internal/middleware"
	minioRepo "klontong/internal/repository/minio"
	psqlRepo "klontong/internal/repository/postgres"
	"klontong/internal/rest"
	"klontong/pkg/config"
	"klontong/pkg/database"
	"klontong/pkg/logger"
	"klontong/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Klontong API", "version", cfg.App.Version)

	metrics.Init()
	httpmetrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.AuditLog{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Init object storage, the service keeps serving fallback URLs when
	// MinIO is unreachable
	storageRepo, err := minioRepo.NewStorageRepository(minioRepo.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to init object storage client", "error", err)
	}

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	auditRepo := psqlRepo.NewAuditLogRepository(db)

	// Init service
	auditService := auditlog.NewAuditLogService(auditRepo)
	productService := product.NewProductService(productRepo, auditService)
	categoryService := category.NewCategoryService(categoryRepo)
	checkoutService := checkout.NewCheckoutService(productRepo, auditService)
	uploadService := upload.NewUploadService(storageRepo)

	// Init handler
	productHandler := rest.NewProductHandler(productService, uploadService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	checkoutHandler := rest.NewCheckoutHandler(checkoutService)
	auditHandler := rest.NewAuditLogHandler(auditService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetCheckoutRoutes(api, checkoutHandler)
	router.SetAuditLogRoutes(api, auditHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
