package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodnova/internal/config"
	"foodnova/internal/handlers"
	"foodnova/internal/middleware"
	"foodnova/internal/models"
	"foodnova/internal/repositories"
	"foodnova/internal/services"
	"foodnova/pkg/sms"
	"foodnova/pkg/storage"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Pack{},
		&models.PackVariant{},
		&models.PackVariantItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Receipt{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// --- Storage & SMS ---
	uploadDriver, err := storage.NewLocalDriver(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	smsClient := sms.NewClient(sms.Config{
		Username: cfg.SMSUsername,
		APIKey:   cfg.SMSAPIKey,
		SenderID: cfg.SMSSenderID,
		BaseURL:  cfg.SMSBaseURL,
	})
	notifier := sms.NewService(smsClient)

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	packRepo := repositories.NewGORMPackRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receiptRepo := repositories.NewGORMReceiptRepository(db)

	seedAdmin(userRepo, cfg)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, packRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	packService := services.NewPackService(packRepo)
	inventoryService := services.NewInventoryService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, packRepo, receiptRepo, userRepo, inventoryService, notifier)
	receiptService := services.NewReceiptService(receiptRepo, orderRepo, userRepo, uploadDriver, notifier, cfg.MaxUploadMB)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, receiptService)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(categoryService, productService, inventoryService)
	adminPackHandler := handlers.NewAdminPackHandler(packService, catalogService)
	adminOrderHandler := handlers.NewAdminOrderHandler(orderService, receiptService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		BodyLimit: (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(cors.New())

	// Uploaded receipts are served straight from the upload directory.
	app.Static("/uploads", cfg.UploadDir)

	// --- API Routes ---
	api := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	// Authenticated routes
	authed := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(authed)
	orderHandler.RegisterRoutes(authed)

	// Admin routes
	admin := api.Group("/admin", middleware.AdminRequired(authService))
	adminCatalogHandler.RegisterRoutes(admin)
	adminPackHandler.RegisterRoutes(admin)
	adminOrderHandler.RegisterRoutes(admin)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedAdmin creates the configured admin account if it does not exist
// yet. Without ADMIN_EMAIL/ADMIN_PASSWORD set, nothing is seeded.
func seedAdmin(userRepo repositories.UserRepository, cfg config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	if _, err := userRepo.GetByEmail(cfg.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Error checking for admin account: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	admin := &models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FullName:     cfg.AdminName,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Error seeding admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account: %s", cfg.AdminEmail)
}
