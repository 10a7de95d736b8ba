package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
)

func relSet(rels []model.QuestionTaxonomyRelationship) map[string]struct{} {
	set := make(map[string]struct{}, len(rels))
	for _, r := range rels {
		set[string(r.TaxonomyType)+":"+r.TaxonomyID] = struct{}{}
	}
	return set
}

func TestExpandRelationshipsFullFanOut(t *testing.T) {
	agg := &model.QuestionAggregate{
		ID: uuid.New(),
		Taxonomy: model.TaxonomyReferences{
			CategoryLevel1:  "math",
			CategoryLevel2:  "algebra",
			CategoryLevel3:  "linear",
			CategoryLevel4:  "matrices",
			Tags:            []string{"exam-prep", "homework"},
			Quizzes:         []string{"quiz-1"},
			DifficultyLevel: "hard",
		},
	}

	rels := ExpandRelationships(agg)
	if len(rels) != 8 {
		t.Fatalf("expected 8 relationships, got %d", len(rels))
	}

	set := relSet(rels)
	for _, want := range []string{
		"category_level_1:math",
		"category_level_2:algebra",
		"category_level_3:linear",
		"category_level_4:matrices",
		"tag:exam-prep",
		"tag:homework",
		"quiz:quiz-1",
		"difficulty_level:hard",
	} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing relationship %s", want)
		}
	}

	for _, r := range rels {
		if r.QuestionID != agg.ID {
			t.Fatalf("relationship %v carries wrong question id", r)
		}
	}
}

func TestExpandRelationshipsDeduplicates(t *testing.T) {
	agg := &model.QuestionAggregate{
		ID: uuid.New(),
		Taxonomy: model.TaxonomyReferences{
			Tags:    []string{"exam-prep", "exam-prep", "homework"},
			Quizzes: []string{"quiz-1", "quiz-1"},
		},
	}

	rels := ExpandRelationships(agg)
	if len(rels) != 3 {
		t.Fatalf("expected 3 deduplicated relationships, got %d: %v", len(rels), rels)
	}
}

func TestExpandRelationshipsSameIDAcrossTypes(t *testing.T) {
	// The same id under two types is two distinct relationships.
	agg := &model.QuestionAggregate{
		ID: uuid.New(),
		Taxonomy: model.TaxonomyReferences{
			Tags:    []string{"review"},
			Quizzes: []string{"review"},
		},
	}

	rels := ExpandRelationships(agg)
	if len(rels) != 2 {
		t.Fatalf("expected 2 relationships, got %d: %v", len(rels), rels)
	}
}

func TestExpandRelationshipsEmpty(t *testing.T) {
	rels := ExpandRelationships(&model.QuestionAggregate{ID: uuid.New()})
	if len(rels) != 0 {
		t.Fatalf("expected no relationships, got %v", rels)
	}
}

func TestExpandRelationshipsSkipsBlankIDs(t *testing.T) {
	agg := &model.QuestionAggregate{
		ID: uuid.New(),
		Taxonomy: model.TaxonomyReferences{
			CategoryLevel1: "math",
			Tags:           []string{"", "homework"},
		},
	}

	rels := ExpandRelationships(agg)
	if len(rels) != 2 {
		t.Fatalf("expected blank ids to be skipped, got %v", rels)
	}
}
