package guard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

type fakeTaxonomyLookup struct {
	snapshot *model.TaxonomySnapshot
	err      error
}

func (f *fakeTaxonomyLookup) Snapshot(ctx context.Context, bankID uuid.UUID) (*model.TaxonomySnapshot, error) {
	return f.snapshot, f.err
}

func taxonomyRequest(refs *model.TaxonomyReferences) *model.UpsertRequest {
	return &model.UpsertRequest{
		UserID:           1,
		BankID:           uuid.New(),
		SourceQuestionID: "q-1",
		Taxonomy:         refs,
	}
}

func fullSnapshot() *model.TaxonomySnapshot {
	return &model.TaxonomySnapshot{
		CategoryLevels: [model.MaxCategoryDepth][]string{
			{"math"},
			{"algebra"},
			{"linear"},
			{"matrices"},
		},
		Tags:             []string{"exam-prep", "homework"},
		Quizzes:          []string{"quiz-1"},
		DifficultyLevels: []string{"easy", "hard"},
	}
}

func TestTaxonomyEmptyReferencesPassWithoutLookup(t *testing.T) {
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{err: errors.New("must not be called")})

	violation, err := g.Check(context.Background(), taxonomyRequest(nil))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation != nil {
		t.Fatalf("empty references should pass, got %v", violation)
	}
}

func TestTaxonomyValidReferencesPass(t *testing.T) {
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{snapshot: fullSnapshot()})
	refs := &model.TaxonomyReferences{
		CategoryLevel1:  "math",
		CategoryLevel2:  "algebra",
		Tags:            []string{"exam-prep"},
		Quizzes:         []string{"quiz-1"},
		DifficultyLevel: "hard",
	}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation != nil {
		t.Fatalf("expected pass, got %v", violation)
	}
}

func TestTaxonomyHierarchyGapRejected(t *testing.T) {
	// The ids themselves exist; the gap alone must fail the request.
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{snapshot: fullSnapshot()})
	refs := &model.TaxonomyReferences{CategoryLevel2: "algebra"}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil {
		t.Fatal("expected hierarchy violation for level 2 without level 1")
	}
	if violation.Code != response.ErrInvalidCategoryHierarchy {
		t.Fatalf("expected INVALID_CATEGORY_HIERARCHY, got %s", violation.Code)
	}
}

func TestTaxonomyHierarchyGapInMiddle(t *testing.T) {
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{snapshot: fullSnapshot()})
	refs := &model.TaxonomyReferences{
		CategoryLevel1: "math",
		CategoryLevel2: "algebra",
		CategoryLevel4: "matrices",
	}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil || violation.Code != response.ErrInvalidCategoryHierarchy {
		t.Fatalf("expected hierarchy violation for level 4 without level 3, got %v", violation)
	}
}

func TestTaxonomyHierarchyCheckedBeforeExistence(t *testing.T) {
	// Lookup failure would surface as an infrastructure error, so a
	// violation here proves the gap check ran first.
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{err: errors.New("snapshot unavailable")})
	refs := &model.TaxonomyReferences{CategoryLevel3: "linear"}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil || violation.Code != response.ErrInvalidCategoryHierarchy {
		t.Fatalf("expected hierarchy violation before snapshot load, got %v", violation)
	}
}

func TestTaxonomyUnknownReferencesListed(t *testing.T) {
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{snapshot: fullSnapshot()})
	refs := &model.TaxonomyReferences{
		CategoryLevel1:  "math",
		Tags:            []string{"exam-prep", "no-such-tag"},
		Quizzes:         []string{"quiz-9"},
		DifficultyLevel: "impossible",
	}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation == nil {
		t.Fatal("expected violation for unknown references")
	}
	if violation.Code != response.ErrInvalidTaxonomyReference {
		t.Fatalf("expected INVALID_TAXONOMY_REFERENCE, got %s", violation.Code)
	}
	for _, want := range []string{"tag:no-such-tag", "quiz:quiz-9", "difficulty_level:impossible"} {
		if !strings.Contains(violation.Detail, want) {
			t.Fatalf("detail %q missing %q", violation.Detail, want)
		}
	}
	if strings.Contains(violation.Detail, "exam-prep") {
		t.Fatalf("detail %q should not list known references", violation.Detail)
	}
}

func TestTaxonomySnapshotFailurePropagates(t *testing.T) {
	lookupErr := errors.New("postgres down")
	g := NewTaxonomyReferenceGuard(&fakeTaxonomyLookup{err: lookupErr})
	refs := &model.TaxonomyReferences{CategoryLevel1: "math"}

	violation, err := g.Check(context.Background(), taxonomyRequest(refs))
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
	if violation != nil {
		t.Fatalf("infrastructure failure must not report a violation, got %v", violation)
	}
}
