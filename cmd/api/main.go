package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/config"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/infrastructure/database"
	"github.com/iliri/iliri-api/internal/infrastructure/memory"
	infraRepo "github.com/iliri/iliri-api/internal/infrastructure/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/handler"
	"github.com/iliri/iliri-api/internal/presentation/http/routes"
	"github.com/iliri/iliri-api/pkg/printer"
	"github.com/iliri/iliri-api/pkg/utils"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	// Initialize repositories
	keyValueRepo := infraRepo.NewKeyValueRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)
	if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
	}

	// The ledger lives in memory for the lifetime of the process
	store := memory.NewStore()

	// Initialize services
	authService, err := service.NewAuthService(ctx, keyValueRepo, jwtManager, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	dashboardService := service.NewDashboardService(store, repository.AnalyticsOptions{
		InventoryActiveOnly: cfg.Ledger.InventoryActiveOnly,
	})
	preferenceService := service.NewPreferenceService(keyValueRepo)
	articleService := service.NewArticleService(store, dashboardService)
	supplierService := service.NewSupplierService(store, cfg.Ledger.CodeMaxAttempts)
	clientService := service.NewClientService(store, cfg.Ledger.CodeMaxAttempts)
	purchaseService := service.NewPurchaseService(store, dashboardService)
	saleService := service.NewSaleService(store, dashboardService)

	// Initialize receipt printer
	receiptPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		receiptPrinter = printer.NewNullPrinter()
	}
	receiptService := service.NewReceiptService(store, receiptPrinter, cfg.Printer.Type, cfg.Printer.Title, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Dashboard: handler.NewDashboardHandler(dashboardService, preferenceService),
		Article:   handler.NewArticleHandler(articleService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Client:    handler.NewClientHandler(clientService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Sale:      handler.NewSaleHandler(saleService),
		Receipt:   handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		TokenValidator:  authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
