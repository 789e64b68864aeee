package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ncortesv/tienda-backend/internal/services"
)

// WebhookHandler handles the WhatsApp verification handshake and inbound
// message events
type WebhookHandler struct {
	verifyToken string
	engine      *services.ConversationEngine
	audit       *services.AuditLogger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(verifyToken string, engine *services.ConversationEngine, audit *services.AuditLogger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		engine:      engine,
		audit:       audit,
	}
}

// HandleVerification answers Meta's one-time subscription challenge. The
// raw challenge is echoed back only when the mode is "subscribe" and the
// presented token matches ours.
func (h *WebhookHandler) HandleVerification(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	h.audit.LogVerification(mode, token != "", challenge)

	if mode == "subscribe" && token != "" && token == h.verifyToken {
		return c.SendString(challenge)
	}

	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "Invalid token",
	})
}

// HandleWebhook processes one inbound event. Whatever the routing outcome,
// the platform gets a lightweight {"status": ...} acknowledgement; only an
// unconfigured gateway or a failed outbound send break that.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	if !h.engine.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "WhatsApp client not configured",
		})
	}

	status, err := h.engine.HandleEvent(c.Body())
	if err != nil {
		var gatewayErr *services.GatewayError
		if errors.As(err, &gatewayErr) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": gatewayErr.Error(),
			})
		}
		if errors.Is(err, services.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": string(status),
	})
}
