package guard

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// BaselineSource supplies the session-origin baseline recorded when the
// caller's session began. A nil baseline with a nil error means no
// baseline is known for this user.
type BaselineSource interface {
	Baseline(ctx context.Context, userID int) (*model.SessionOrigin, error)
}

// AuditSink receives security-audit events. Record must not block the
// calling goroutine.
type AuditSink interface {
	Record(event model.SecurityAuditEvent)
}

// SessionIntegrityGuard detects session hijacking by comparing the
// request's client IP and user agent against the baseline recorded at
// login. Callers without a baseline pass through unchanged.
type SessionIntegrityGuard struct {
	baselines BaselineSource
	audit     AuditSink
	clock     Clock
	log       zerolog.Logger
}

// NewSessionIntegrityGuard creates a SessionIntegrityGuard. A nil clock
// defaults to time.Now.
func NewSessionIntegrityGuard(baselines BaselineSource, audit AuditSink, clock Clock, log zerolog.Logger) *SessionIntegrityGuard {
	if clock == nil {
		clock = time.Now
	}
	return &SessionIntegrityGuard{
		baselines: baselines,
		audit:     audit,
		clock:     clock,
		log:       log.With().Str("component", "session_integrity_guard").Logger(),
	}
}

func (g *SessionIntegrityGuard) Name() string { return "session_integrity" }

func (g *SessionIntegrityGuard) Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	baseline, err := g.baselines.Baseline(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		// No baseline recorded for this user.
		return nil, nil
	}

	observed := model.SessionOrigin{}
	if req.Origin != nil {
		observed = *req.Origin
	}

	if observed.ClientIP == baseline.ClientIP && observed.UserAgent == baseline.UserAgent {
		return nil, nil
	}

	g.audit.Record(model.SecurityAuditEvent{
		EventType:  model.AuditEventSessionHijack,
		UserID:     req.UserID,
		Baseline:   *baseline,
		Observed:   observed,
		Detail:     "request origin does not match session baseline",
		RecordedAt: g.clock(),
	})

	g.log.Warn().
		Int("user_id", req.UserID).
		Str("baseline_ip", baseline.ClientIP).
		Str("observed_ip", observed.ClientIP).
		Msg("Session origin mismatch detected")

	return Violationf(response.ErrSessionSecurityViolation,
		"request origin does not match the active session"), nil
}
