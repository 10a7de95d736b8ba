package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

type fakeBankOwnership struct {
	owners map[uuid.UUID]int
	err    error
}

func (f *fakeBankOwnership) IsOwnedBy(ctx context.Context, bankID uuid.UUID, userID int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owners[bankID] == userID, nil
}

func TestOwnershipOwnerPasses(t *testing.T) {
	bank := uuid.New()
	g := NewOwnershipGuard(&fakeBankOwnership{owners: map[uuid.UUID]int{bank: 42}})

	violation, err := g.Check(context.Background(), &model.UpsertRequest{UserID: 42, BankID: bank})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation != nil {
		t.Fatalf("owner should pass, got %v", violation)
	}
}

func TestOwnershipStrangerRejected(t *testing.T) {
	bank := uuid.New()
	g := NewOwnershipGuard(&fakeBankOwnership{owners: map[uuid.UUID]int{bank: 42}})

	violation, err := g.Check(context.Background(), &model.UpsertRequest{UserID: 7, BankID: bank})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil {
		t.Fatal("expected ownership violation")
	}
	if violation.Code != response.ErrOwnershipViolation {
		t.Fatalf("expected OWNERSHIP_VIOLATION, got %s", violation.Code)
	}
}

func TestOwnershipUnknownBankRejected(t *testing.T) {
	g := NewOwnershipGuard(&fakeBankOwnership{owners: map[uuid.UUID]int{}})

	violation, err := g.Check(context.Background(), &model.UpsertRequest{UserID: 7, BankID: uuid.New()})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil {
		t.Fatal("expected violation for unknown bank")
	}
}

func TestOwnershipLookupFailurePropagates(t *testing.T) {
	lookupErr := errors.New("postgres down")
	g := NewOwnershipGuard(&fakeBankOwnership{err: lookupErr})

	violation, err := g.Check(context.Background(), &model.UpsertRequest{UserID: 7, BankID: uuid.New()})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
	if violation != nil {
		t.Fatalf("infrastructure failure must not report a violation, got %v", violation)
	}
}
