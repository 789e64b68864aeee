package services

import (
	"log"
	"os"
	"path/filepath"
)

// AuditLogger keeps an append-only record of every inbound payload and
// every flow transition, for diagnostics. It writes to a dedicated file so
// webhook noise does not drown the server log.
type AuditLogger struct {
	logger *log.Logger
}

// NewAuditLogger opens the audit log at WEBHOOK_LOG_PATH (default
// logs/webhook_payloads.txt), creating the directory if needed. When the
// file cannot be opened the audit trail falls back to stderr.
func NewAuditLogger() *AuditLogger {
	path := os.Getenv("WEBHOOK_LOG_PATH")
	if path == "" {
		path = "logs/webhook_payloads.txt"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Failed to create audit log directory %s: %v", dir, err)
			return &AuditLogger{logger: log.Default()}
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Failed to open audit log %s: %v", path, err)
		return &AuditLogger{logger: log.Default()}
	}

	return &AuditLogger{logger: log.New(file, "", log.LstdFlags)}
}

// LogPayload records a raw webhook body
func (a *AuditLogger) LogPayload(body []byte) {
	a.logger.Printf("POST /webhook payload: %s", string(body))
}

// LogVerification records a handshake attempt. Only the token's presence
// is logged, never its value.
func (a *AuditLogger) LogVerification(mode string, tokenProvided bool, challenge string) {
	a.logger.Printf("GET /webhook hub.mode=%s token_provided=%v hub.challenge=%s", mode, tokenProvided, challenge)
}

// LogTransition records a flow state change for a sender
func (a *AuditLogger) LogTransition(sender string, from, to Flow) {
	a.logger.Printf("flow transition sender=%s from=%q to=%q", sender, from, to)
}

// Logf records a free-form diagnostic entry
func (a *AuditLogger) Logf(format string, args ...interface{}) {
	a.logger.Printf(format, args...)
}
