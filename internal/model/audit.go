package model

import "time"

// AuditEventType classifies a security-audit record.
type AuditEventType string

const (
	AuditEventSessionHijack AuditEventType = "SESSION_HIJACK_ATTEMPT"
)

// SecurityAuditEvent records a detected security violation. Events are
// emitted asynchronously and must never block the request path.
type SecurityAuditEvent struct {
	EventType  AuditEventType `json:"event_type"`
	UserID     int            `json:"user_id"`
	Baseline   SessionOrigin  `json:"baseline"`
	Observed   SessionOrigin  `json:"observed"`
	Detail     string         `json:"detail"`
	RecordedAt time.Time      `json:"recorded_at"`
}
