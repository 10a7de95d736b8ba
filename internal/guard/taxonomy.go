package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// TaxonomyLookup supplies the read-only taxonomy snapshot for a bank.
type TaxonomyLookup interface {
	Snapshot(ctx context.Context, bankID uuid.UUID) (*model.TaxonomySnapshot, error)
}

// TaxonomyReferenceGuard validates that every taxonomy id the request
// references exists in the bank's snapshot, and that the referenced
// category levels form a contiguous chain starting at level 1.
type TaxonomyReferenceGuard struct {
	lookup TaxonomyLookup
}

// NewTaxonomyReferenceGuard creates a TaxonomyReferenceGuard.
func NewTaxonomyReferenceGuard(lookup TaxonomyLookup) *TaxonomyReferenceGuard {
	return &TaxonomyReferenceGuard{lookup: lookup}
}

func (g *TaxonomyReferenceGuard) Name() string { return "taxonomy_reference" }

func (g *TaxonomyReferenceGuard) Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	refs := req.TaxonomyOrEmpty()
	if refs.IsEmpty() {
		return nil, nil
	}

	// Hierarchy before existence: a gap is reported as a hierarchy fault
	// even when the deeper level's id would otherwise resolve.
	levels := refs.CategoryLevels()
	gapAt := 0
	for i, id := range levels {
		if id == "" {
			if gapAt == 0 {
				gapAt = i + 1
			}
			continue
		}
		if gapAt != 0 {
			return Violationf(response.ErrInvalidCategoryHierarchy,
				"category level %d referenced without level %d", i+1, gapAt), nil
		}
	}

	snapshot, err := g.lookup.Snapshot(ctx, req.BankID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for i, id := range levels {
		if id != "" && !snapshot.HasCategory(i+1, id) {
			missing = append(missing, fmt.Sprintf("category_level_%d:%s", i+1, id))
		}
	}
	for _, tag := range refs.Tags {
		if !snapshot.HasTag(tag) {
			missing = append(missing, "tag:"+tag)
		}
	}
	for _, quiz := range refs.Quizzes {
		if !snapshot.HasQuiz(quiz) {
			missing = append(missing, "quiz:"+quiz)
		}
	}
	if refs.DifficultyLevel != "" && !snapshot.HasDifficultyLevel(refs.DifficultyLevel) {
		missing = append(missing, "difficulty_level:"+refs.DifficultyLevel)
	}

	if len(missing) > 0 {
		return Violationf(response.ErrInvalidTaxonomyReference,
			"unknown taxonomy references: %s", strings.Join(missing, ", ")), nil
	}
	return nil, nil
}
