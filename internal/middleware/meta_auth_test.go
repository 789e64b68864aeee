package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook", ValidateMetaSignature(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}

func TestValidateMetaSignatureAccepts(t *testing.T) {
	t.Setenv("WHATSAPP_APP_SECRET", "app-secret")
	app := newProtectedApp()

	body := `{"entry": []}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature-256", signBody("app-secret", []byte(body)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateMetaSignatureRejectsBadSignature(t *testing.T) {
	t.Setenv("WHATSAPP_APP_SECRET", "app-secret")
	app := newProtectedApp()

	body := `{"entry": []}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signBody("other-secret", []byte(body)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidateMetaSignatureRejectsMissingHeader(t *testing.T) {
	t.Setenv("WHATSAPP_APP_SECRET", "app-secret")
	app := newProtectedApp()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidateMetaSignatureMissingSecretIs500(t *testing.T) {
	t.Setenv("WHATSAPP_APP_SECRET", "")
	app := newProtectedApp()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
