package api

import (
	"log/slog"
	"net/http"
	"time"
)

// AuditEvent identifies the type of wallet action being logged.
type AuditEvent string

const (
	AuditCredentialStored  AuditEvent = "credential_stored"
	AuditCredentialRemoved AuditEvent = "credential_removed"
	AuditWalletExported    AuditEvent = "wallet_exported"
	AuditAuthFailure       AuditEvent = "auth_failure"
)

// auditLogger wraps slog.Logger for structured audit logging. Credential
// names are logged; values never are.
type auditLogger struct {
	logger *slog.Logger
}

func newAuditLogger(logger *slog.Logger) *auditLogger {
	return &auditLogger{logger: logger.With("component", "audit")}
}

func (al *auditLogger) log(event AuditEvent, r *http.Request, attrs ...slog.Attr) {
	baseAttrs := []slog.Attr{
		slog.String("event", string(event)),
		slog.String("request_id", requestIDFrom(r.Context())),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	baseAttrs = append(baseAttrs, attrs...)
	al.logger.LogAttrs(r.Context(), slog.LevelInfo, "audit", baseAttrs...)
}
