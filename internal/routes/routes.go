package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/ncortesv/tienda-backend/internal/handlers"
	"github.com/ncortesv/tienda-backend/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, webhookHandler *handlers.WebhookHandler) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Tienda WhatsApp Backend",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":  "/health",
				"webhook": "/webhook",
			},
		})
	})

	// ========== WEBHOOK ROUTES ==========

	// Subscription verification handshake
	app.Get("/webhook", webhookHandler.HandleVerification)

	// Inbound events - ENVIRONMENT-AWARE VALIDATION
	if os.Getenv("WHATSAPP_APP_SECRET") == "" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: no app secret, skip signature validation
		app.Post("/webhook", webhookHandler.HandleWebhook)
		println("⚠️  WhatsApp webhook signature validation DISABLED")
	} else {
		// Production: validate X-Hub-Signature-256
		app.Post("/webhook", middleware.ValidateMetaSignature(), webhookHandler.HandleWebhook)
	}
}
