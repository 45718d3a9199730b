package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jefflong/lzryek-followup/internal/config"
	"github.com/jefflong/lzryek-followup/internal/handler"
	"github.com/jefflong/lzryek-followup/internal/middleware"
	"github.com/jefflong/lzryek-followup/internal/pdf"
	"github.com/jefflong/lzryek-followup/internal/service"
	"github.com/jefflong/lzryek-followup/internal/store"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize the record store backend
	kv, cleanup, err := newKV(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer cleanup()

	// Wrap the backend with at-rest encryption when a key is configured
	if cfg.Storage.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.Storage.EncryptionKey)
		if err != nil {
			logger.Fatal("Failed to decode encryption key", zap.Error(err))
		}
		kv, err = store.NewEncryptedKV(kv, key, logger)
		if err != nil {
			logger.Fatal("Failed to initialize record encryption", zap.Error(err))
		}
		logger.Info("Record store encryption enabled")
	}

	patientStore := store.NewPatientStore(kv, cfg.Storage.Key, logger)

	// Initialize services
	patientService := service.NewPatientService(patientStore, logger)
	reminderService := service.NewReminderService(patientStore, logger)
	dashboardService := service.NewDashboardService(patientStore, logger)
	assessmentService := service.NewAssessmentService(patientStore, logger)
	importExportService := service.NewImportExportService(patientStore, logger)

	pdfGenerator := pdf.NewPDFGenerator(logger)
	reportService := service.NewReportService(patientStore, pdfGenerator, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register API handlers
	handler.RegisterRoutes(r, handler.Handlers{
		Patient:      handler.NewPatientHandler(patientService, logger),
		Assessment:   handler.NewAssessmentHandler(assessmentService, logger),
		Dashboard:    handler.NewDashboardHandler(reminderService, dashboardService, logger),
		ImportExport: handler.NewImportExportHandler(importExportService, logger),
		Report:       handler.NewReportHandler(reportService, logger),
		Health:       handler.NewHealthHandler(kv, logger),
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newKV builds the configured record store backend. The returned cleanup
// releases whatever the backend holds open.
func newKV(cfg *config.Config, logger *zap.Logger) (store.KV, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		kv, err := store.NewFileKV(cfg.Storage.File.Dir, logger)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil

	case config.BackendPostgres:
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, cfg.Storage.Database.URL)
		if err != nil {
			return nil, noop, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("Successfully connected to database")

		kv, err := store.NewPostgresKV(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return kv, pool.Close, nil

	case config.BackendAzureBlob:
		kv, err := store.NewAzureBlobKV(
			cfg.Storage.Azure.AccountName,
			cfg.Storage.Azure.AccountKey,
			cfg.Storage.Azure.Container,
			logger,
		)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil

	default:
		return store.NewMemKV(), noop, nil
	}
}
