package strategy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func baseRequest(qt model.QuestionType) *model.UpsertRequest {
	return &model.UpsertRequest{
		UserID:           42,
		BankID:           uuid.New(),
		SourceQuestionID: "ext-17",
		QuestionType:     qt,
		Title:            "Pythagoras",
		Content:          "State the theorem.",
	}
}

func TestResolverClosedEnum(t *testing.T) {
	r := NewResolver()

	for _, qt := range []model.QuestionType{
		model.QuestionTypeMCQ,
		model.QuestionTypeEssay,
		model.QuestionTypeTrueFalse,
	} {
		strat, err := r.Resolve(qt)
		if err != nil {
			t.Fatalf("resolve %s: %v", qt, err)
		}
		if strat.Type() != qt {
			t.Fatalf("strategy for %s reports type %s", qt, strat.Type())
		}
	}
}

func TestResolverUnsupportedType(t *testing.T) {
	r := NewResolver()

	for _, qt := range []model.QuestionType{"FILL_IN", "", "mcq"} {
		if _, err := r.Resolve(qt); !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("resolve %q: expected ErrUnsupportedType, got %v", qt, err)
		}
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	req := baseRequest(model.QuestionTypeEssay)

	agg, err := (&EssayStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if agg.Points != model.DefaultPoints {
		t.Fatalf("expected default points %d, got %d", model.DefaultPoints, agg.Points)
	}
	if agg.Status != model.QuestionStatusDraft {
		t.Fatalf("expected default status DRAFT, got %s", agg.Status)
	}
	if agg.DisplayOrder != 0 || agg.SolutionExplanation != "" {
		t.Fatalf("expected zero-value optionals, got order=%d explanation=%q",
			agg.DisplayOrder, agg.SolutionExplanation)
	}
	if agg.UserID != req.UserID || agg.BankID != req.BankID || agg.SourceQuestionID != req.SourceQuestionID {
		t.Fatal("business key fields not carried over")
	}
	if !agg.CreatedAt.IsZero() || !agg.UpdatedAt.IsZero() {
		t.Fatal("timestamps must stay zero until persisted")
	}
}

func TestBuildAppliesProvidedScalars(t *testing.T) {
	status := model.QuestionStatusPublished
	req := baseRequest(model.QuestionTypeEssay)
	req.Points = intPtr(5)
	req.Status = &status
	req.DisplayOrder = intPtr(3)
	req.SolutionExplanation = strPtr("a^2 + b^2 = c^2")

	agg, err := (&EssayStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if agg.Points != 5 || agg.Status != status || agg.DisplayOrder != 3 {
		t.Fatalf("scalars not applied: %+v", agg)
	}
	if agg.SolutionExplanation != "a^2 + b^2 = c^2" {
		t.Fatalf("unexpected explanation %q", agg.SolutionExplanation)
	}
}

func TestMCQBuildPayload(t *testing.T) {
	req := baseRequest(model.QuestionTypeMCQ)
	req.Options = []model.ChoiceOption{
		{ID: "a", Text: "3-4-5", Correct: true},
		{ID: "b", Text: "2-3-4", Correct: false},
	}

	agg, err := (&MCQStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var payload model.ChoicePayload
	if err := json.Unmarshal(agg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Options) != 2 || payload.Options[0].ID != "a" || !payload.Options[0].Correct {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestEssayBuildPayload(t *testing.T) {
	req := baseRequest(model.QuestionTypeEssay)
	req.Essay = &model.EssayPayload{
		MinWordCount: intPtr(100),
		MaxWordCount: intPtr(500),
		RubricNotes:  "cite the proof",
	}

	agg, err := (&EssayStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var payload model.EssayPayload
	if err := json.Unmarshal(agg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.MinWordCount == nil || *payload.MinWordCount != 100 {
		t.Fatalf("unexpected min word count %+v", payload.MinWordCount)
	}
	if payload.RubricNotes != "cite the proof" {
		t.Fatalf("unexpected rubric notes %q", payload.RubricNotes)
	}
}

func TestTrueFalseBuildPayload(t *testing.T) {
	req := baseRequest(model.QuestionTypeTrueFalse)
	req.Options = []model.ChoiceOption{
		{ID: "true", Text: "True", Correct: true},
		{ID: "false", Text: "False", Correct: false},
	}

	agg, err := (&TrueFalseStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var payload model.ChoicePayload
	if err := json.Unmarshal(agg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Options) != 2 || payload.Options[0].ID != "true" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBuildCopiesOptions(t *testing.T) {
	req := baseRequest(model.QuestionTypeMCQ)
	req.Options = []model.ChoiceOption{
		{ID: "a", Correct: true},
		{ID: "b"},
	}

	agg, err := (&MCQStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	req.Options[0].ID = "mutated"

	var payload model.ChoicePayload
	if err := json.Unmarshal(agg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Options[0].ID != "a" {
		t.Fatal("payload must not alias the request's option slice")
	}
}

func TestBuildCarriesTaxonomy(t *testing.T) {
	req := baseRequest(model.QuestionTypeEssay)
	req.Taxonomy = &model.TaxonomyReferences{
		CategoryLevel1: "math",
		Tags:           []string{"geometry"},
	}

	agg, err := (&EssayStrategy{}).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if agg.Taxonomy.CategoryLevel1 != "math" || len(agg.Taxonomy.Tags) != 1 {
		t.Fatalf("taxonomy not carried: %+v", agg.Taxonomy)
	}
}
