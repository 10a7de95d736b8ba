package guard

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// BankOwnership answers whether a bank belongs to a user.
type BankOwnership interface {
	IsOwnedBy(ctx context.Context, bankID uuid.UUID, userID int) (bool, error)
}

// OwnershipGuard confirms the target bank belongs to the requesting user.
// It runs before any taxonomy or payload check so that error messages
// cannot be used to probe the contents of someone else's bank.
type OwnershipGuard struct {
	banks BankOwnership
}

// NewOwnershipGuard creates an OwnershipGuard.
func NewOwnershipGuard(banks BankOwnership) *OwnershipGuard {
	return &OwnershipGuard{banks: banks}
}

func (g *OwnershipGuard) Name() string { return "ownership" }

func (g *OwnershipGuard) Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	owned, err := g.banks.IsOwnedBy(ctx, req.BankID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return Violationf(response.ErrOwnershipViolation,
			"bank %s is not owned by the requesting user", req.BankID), nil
	}
	return nil, nil
}
