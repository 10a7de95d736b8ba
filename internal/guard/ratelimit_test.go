package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func limiterRequest(userID int, bankID uuid.UUID) *model.UpsertRequest {
	return &model.UpsertRequest{
		UserID:           userID,
		BankID:           bankID,
		SourceQuestionID: "q-1",
		QuestionType:     model.QuestionTypeEssay,
	}
}

func TestRateLimitBurstWindow(t *testing.T) {
	clock := newFakeClock()
	g := NewRateLimitGuard(10*time.Second, 3, time.Minute, 100, clock.Now)
	req := limiterRequest(42, uuid.New())

	for i := 0; i < 3; i++ {
		violation, err := g.Check(context.Background(), req)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if violation != nil {
			t.Fatalf("call %d unexpectedly rejected: %v", i, violation)
		}
	}

	violation, err := g.Check(context.Background(), req)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil {
		t.Fatal("expected burst limit violation on 4th call")
	}
	if violation.Code != response.ErrRateLimitExceeded {
		t.Fatalf("expected RATE_LIMIT_EXCEEDED, got %s", violation.Code)
	}
}

func TestRateLimitRecoversAfterWindow(t *testing.T) {
	clock := newFakeClock()
	g := NewRateLimitGuard(10*time.Second, 2, time.Minute, 100, clock.Now)
	req := limiterRequest(42, uuid.New())

	for i := 0; i < 2; i++ {
		if violation, _ := g.Check(context.Background(), req); violation != nil {
			t.Fatalf("call %d unexpectedly rejected", i)
		}
	}
	if violation, _ := g.Check(context.Background(), req); violation == nil {
		t.Fatal("expected rejection inside burst window")
	}

	clock.Advance(11 * time.Second)

	if violation, _ := g.Check(context.Background(), req); violation != nil {
		t.Fatalf("expected pass after burst window elapsed, got %v", violation)
	}
}

func TestRateLimitSustainedWindow(t *testing.T) {
	clock := newFakeClock()
	g := NewRateLimitGuard(time.Second, 100, time.Minute, 5, clock.Now)
	req := limiterRequest(7, uuid.New())

	for i := 0; i < 5; i++ {
		if violation, _ := g.Check(context.Background(), req); violation != nil {
			t.Fatalf("call %d unexpectedly rejected", i)
		}
		clock.Advance(2 * time.Second) // Spread calls so the burst window never trips.
	}

	if violation, _ := g.Check(context.Background(), req); violation == nil {
		t.Fatal("expected sustained limit violation on 6th call")
	}

	// Old buckets expire as the window slides.
	clock.Advance(time.Minute)
	if violation, _ := g.Check(context.Background(), req); violation != nil {
		t.Fatalf("expected pass after sustained window elapsed, got %v", violation)
	}
}

func TestRateLimitIdentitiesAreIndependent(t *testing.T) {
	clock := newFakeClock()
	g := NewRateLimitGuard(10*time.Second, 1, time.Minute, 100, clock.Now)
	bank := uuid.New()

	if violation, _ := g.Check(context.Background(), limiterRequest(1, bank)); violation != nil {
		t.Fatalf("first identity rejected: %v", violation)
	}
	if violation, _ := g.Check(context.Background(), limiterRequest(1, bank)); violation == nil {
		t.Fatal("expected first identity to be throttled")
	}
	if violation, _ := g.Check(context.Background(), limiterRequest(2, bank)); violation != nil {
		t.Fatalf("second identity should not share the first identity's window: %v", violation)
	}
}

func TestRateLimitConcurrentCalls(t *testing.T) {
	clock := newFakeClock()
	limit := 50
	g := NewRateLimitGuard(10*time.Second, limit, time.Minute, limit, clock.Now)
	req := limiterRequest(9, uuid.New())

	var wg sync.WaitGroup
	var mu sync.Mutex
	passed := 0

	for i := 0; i < 2*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			violation, err := g.Check(context.Background(), req)
			if err != nil {
				t.Errorf("check: %v", err)
				return
			}
			if violation == nil {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if passed != limit {
		t.Fatalf("expected exactly %d calls to pass, got %d", limit, passed)
	}
}

func TestRateLimitEvictsExpiredBuckets(t *testing.T) {
	clock := newFakeClock()
	g := NewRateLimitGuard(10*time.Second, 100, time.Minute, 100, clock.Now)
	req := limiterRequest(3, uuid.New())

	for i := 0; i < 10; i++ {
		if violation, _ := g.Check(context.Background(), req); violation != nil {
			t.Fatalf("call %d unexpectedly rejected", i)
		}
	}

	clock.Advance(2 * time.Minute)
	if violation, _ := g.Check(context.Background(), req); violation != nil {
		t.Fatalf("check after expiry: %v", violation)
	}

	w := g.window(identityKey(req))
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.calls) != 1 {
		t.Fatalf("expected expired buckets to be purged, %d timestamps remain", len(w.calls))
	}
}
