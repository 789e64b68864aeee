package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ncortesv/tienda-backend/database"
	"github.com/ncortesv/tienda-backend/internal/handlers"
	"github.com/ncortesv/tienda-backend/internal/models"
	"github.com/ncortesv/tienda-backend/internal/routes"
	"github.com/ncortesv/tienda-backend/internal/services"
	"github.com/ncortesv/tienda-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	verifyToken := os.Getenv("WHATSAPP_VERIFY_TOKEN")
	if verifyToken == "" {
		log.Println("⚠️  WHATSAPP_VERIFY_TOKEN not set - webhook verification will reject every handshake")
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(&models.Customer{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Initialize WhatsApp client (nil disables outbound replies)
	whatsappClient := services.NewWhatsAppClientFromEnv()
	if whatsappClient == nil {
		log.Println("⚠️  WHATSAPP_API_URL / WHATSAPP_TOKEN not set - replies disabled")
	} else {
		log.Println("✅ WhatsApp client initialized")
	}

	// Initialize services
	auditLogger := services.NewAuditLogger()
	flowStore := services.NewFlowStore()
	customerService := services.NewCustomerService(store)
	shortcutService := services.NewShortcutService(nil, privilegedSenders())

	var sender services.MessageSender
	if whatsappClient != nil {
		sender = whatsappClient
	}
	engine := services.NewConversationEngine(flowStore, shortcutService, customerService, sender, auditLogger)

	webhookHandler := handlers.NewWebhookHandler(verifyToken, engine, auditLogger)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Tienda WhatsApp Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		// Check database if using it
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database":     status == "healthy",
				"whatsapp":     whatsappClient != nil,
				"active_flows": flowStore.ActiveCount(),
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, webhookHandler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Tienda WhatsApp Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("📱 WhatsApp: %s", getWhatsAppStatus(whatsappClient != nil))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// privilegedSenders reads the optional allow-list override for protected
// shortcuts (comma separated phone suffixes)
func privilegedSenders() []string {
	raw := os.Getenv("WHATSAPP_PRIVILEGED_SENDERS")
	if raw == "" {
		return nil
	}

	var senders []string
	for _, entry := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			senders = append(senders, trimmed)
		}
	}
	return senders
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getWhatsAppStatus(configured bool) string {
	if !configured {
		return "Not configured"
	}
	return "Configured"
}
