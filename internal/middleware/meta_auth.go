package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidateMetaSignature validates that the webhook request is from Meta.
// Meta signs the raw body with the app secret and sends the result as
// X-Hub-Signature-256 ("sha256=<hex digest>").
func ValidateMetaSignature() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Hub-Signature-256")
		if signature == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Missing webhook signature",
			})
		}

		appSecret := os.Getenv("WHATSAPP_APP_SECRET")
		if appSecret == "" {
			// Log error but don't expose to client
			fmt.Println("ERROR: WHATSAPP_APP_SECRET not set")
			return c.Status(500).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		expected := calculateBodySignature(appSecret, c.Body())
		provided := strings.TrimPrefix(signature, "sha256=")

		if !hmac.Equal([]byte(expected), []byte(provided)) {
			return c.Status(401).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}

// calculateBodySignature computes the hex HMAC-SHA256 of the raw body
func calculateBodySignature(appSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
