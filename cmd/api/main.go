package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/healthplus/medipos-api/internal/application/service"
	"github.com/healthplus/medipos-api/internal/config"
	"github.com/healthplus/medipos-api/internal/infrastructure/database"
	"github.com/healthplus/medipos-api/internal/infrastructure/repository"
	"github.com/healthplus/medipos-api/internal/presentation/http/handler"
	"github.com/healthplus/medipos-api/internal/presentation/http/routes"
	"github.com/healthplus/medipos-api/pkg/advisory"
	"github.com/healthplus/medipos-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize advisory client
	advisoryClient := advisory.NewClient(advisory.Config{
		APIKey:   cfg.Advisory.APIKey,
		Model:    cfg.Advisory.Model,
		Endpoint: cfg.Advisory.Endpoint,
	})

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, cfg.Tax.Rate)
	receiptService := service.NewReceiptService(thermalPrinter, invoiceRepo, cfg.Store, cfg.Storage, cfg.Printer)
	draftService := service.NewDraftService(invoiceService, receiptService)
	advisoryService := service.NewAdvisoryService(advisoryClient, draftService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Draft:    handler.NewDraftHandler(draftService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Advisory: handler.NewAdvisoryHandler(advisoryService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
