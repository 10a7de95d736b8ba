package guard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// Clock supplies the current time. Injected so tests can drive the
// sliding windows deterministically.
type Clock func() time.Time

// RateLimitGuard throttles upserts per identity over two sliding windows:
// a short burst window and a longer sustained window. Exceeding either
// limit rejects the call. Timestamps older than the sustained window are
// evicted opportunistically on each access, so memory stays bounded by
// recent activity.
type RateLimitGuard struct {
	mu         sync.Mutex
	identities map[string]*identityWindow

	burstWindow     time.Duration
	burstLimit      int
	sustainedWindow time.Duration
	sustainedLimit  int
	clock           Clock
}

// identityWindow holds one identity's recent call timestamps, oldest first.
// Its own lock keeps contention per identity, not global.
type identityWindow struct {
	mu    sync.Mutex
	calls []time.Time
}

// NewRateLimitGuard creates a RateLimitGuard. A nil clock defaults to
// time.Now.
func NewRateLimitGuard(burstWindow time.Duration, burstLimit int, sustainedWindow time.Duration, sustainedLimit int, clock Clock) *RateLimitGuard {
	if clock == nil {
		clock = time.Now
	}
	return &RateLimitGuard{
		identities:      make(map[string]*identityWindow),
		burstWindow:     burstWindow,
		burstLimit:      burstLimit,
		sustainedWindow: sustainedWindow,
		sustainedLimit:  sustainedLimit,
		clock:           clock,
	}
}

func (g *RateLimitGuard) Name() string { return "rate_limit" }

// Check purges expired timestamps for the caller, rejects if either window
// is already at its limit, and otherwise records the call.
func (g *RateLimitGuard) Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	now := g.clock()
	w := g.window(identityKey(req))

	w.mu.Lock()
	defer w.mu.Unlock()

	w.purge(now.Add(-g.sustainedWindow))

	if len(w.calls) >= g.sustainedLimit {
		return Violationf(response.ErrRateLimitExceeded,
			"sustained limit of %d requests per %s reached", g.sustainedLimit, g.sustainedWindow), nil
	}

	burstStart := now.Add(-g.burstWindow)
	burst := 0
	for i := len(w.calls) - 1; i >= 0; i-- {
		if w.calls[i].Before(burstStart) {
			break
		}
		burst++
	}
	if burst >= g.burstLimit {
		return Violationf(response.ErrRateLimitExceeded,
			"burst limit of %d requests per %s reached", g.burstLimit, g.burstWindow), nil
	}

	w.calls = append(w.calls, now)
	return nil, nil
}

func (g *RateLimitGuard) window(key string) *identityWindow {
	g.mu.Lock()
	defer g.mu.Unlock()
	w, ok := g.identities[key]
	if !ok {
		w = &identityWindow{}
		g.identities[key] = w
	}
	return w
}

// purge drops timestamps before cutoff. Caller holds w.mu.
func (w *identityWindow) purge(cutoff time.Time) {
	i := 0
	for i < len(w.calls) && w.calls[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		w.calls = append(w.calls[:0], w.calls[i:]...)
	}
}

func identityKey(req *model.UpsertRequest) string {
	return fmt.Sprintf("%d:%s", req.UserID, req.BankID)
}
