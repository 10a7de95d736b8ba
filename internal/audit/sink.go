// Package audit delivers security-audit events asynchronously. Events are
// queued to Redis for durable persistence by a background worker and
// published to a PubSub channel for live monitoring. Recording an event
// never blocks the request path.
package audit

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/config"
	"github.com/quizforge/qbank-backend/internal/model"
)

const sinkBuffer = 256

// Sink implements guard.AuditSink over a buffered channel drained by a
// single goroutine.
type Sink struct {
	rdb    *redis.Client
	log    zerolog.Logger
	events chan model.SecurityAuditEvent
	done   chan struct{}
}

// NewSink creates a Sink and starts its drain goroutine. ctx cancellation
// stops the goroutine after the buffer is flushed.
func NewSink(ctx context.Context, rdb *redis.Client, log zerolog.Logger) *Sink {
	s := &Sink{
		rdb:    rdb,
		log:    log.With().Str("component", "audit_sink").Logger(),
		events: make(chan model.SecurityAuditEvent, sinkBuffer),
		done:   make(chan struct{}),
	}
	go s.drain(ctx)
	return s
}

// Record enqueues an event. If the buffer is full the event is dropped
// and counted in the logs; auditing must not apply backpressure to the
// write path.
func (s *Sink) Record(event model.SecurityAuditEvent) {
	select {
	case s.events <- event:
	default:
		s.log.Error().
			Str("event_type", string(event.EventType)).
			Int("user_id", event.UserID).
			Msg("Audit buffer full, dropping event")
	}
}

// Wait blocks until the drain goroutine has flushed and exited. Called
// during shutdown after the sink's context is cancelled.
func (s *Sink) Wait() {
	<-s.done
}

func (s *Sink) drain(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case event := <-s.events:
			s.deliver(event)
		case <-ctx.Done():
			// Flush whatever is buffered, then stop.
			for {
				select {
				case event := <-s.events:
					s.deliver(event)
				default:
					return
				}
			}
		}
	}
}

// deliver pushes one event to the persistence queue and the live monitor
// channel. Uses a background context so shutdown cancellation does not
// lose buffered events mid-flush.
func (s *Sink) deliver(event model.SecurityAuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode audit event")
		return
	}

	ctx := context.Background()
	pipe := s.rdb.Pipeline()
	pipe.RPush(ctx, config.WorkerKey.PersistAuditQueue, data)
	pipe.Publish(ctx, config.CacheKey.AuditMonitorChannel(), data)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to deliver audit event to Redis")
	}
}
