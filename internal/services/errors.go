package services

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a reply is attempted but the WhatsApp
// client was never built (missing WHATSAPP_API_URL / WHATSAPP_TOKEN).
var ErrNotConfigured = errors.New("whatsapp client not configured")

// ErrCustomerExists is returned by the customer registry on a name collision.
var ErrCustomerExists = errors.New("el cliente ya existe")

// ValidationError reports a malformed customer draft. It is surfaced to the
// sender as a chat reply, never as an HTTP failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError reports a failed outbound send. It carries the upstream
// status and body so the caller can log them; sends are never retried.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("whatsapp api request failed: %v", e.Err)
	}
	return fmt.Sprintf("whatsapp api error %d: %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
