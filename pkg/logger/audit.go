package logger

import (
	"context"
	"log/slog"
)

// AuditEvent is one security-relevant action, recorded as a structured log
// line. Actor and Target must be sanitized before they reach this type.
type AuditEvent struct {
	EventType     string
	SessionID     string
	Actor         string
	Target        string
	Success       bool
	FailureReason string
}

// AuditLogger emits audit events through the application logger.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// Log records an audit event.
func (a *AuditLogger) Log(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
	}

	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.Actor != "" {
		attrs = append(attrs, slog.String("actor", event.Actor))
	}
	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
}
