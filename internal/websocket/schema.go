package websocket

import "github.com/quizforge/qbank-backend/internal/model"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventAudit Event = "audit"
	EventPong  Event = "pong"
)

// AuditEventMessage streams one security-audit event to a monitor client.
type AuditEventMessage struct {
	Event Event                    `json:"event"`
	Data  model.SecurityAuditEvent `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
