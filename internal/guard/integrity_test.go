package guard

import (
	"context"
	"testing"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

func statusPtr(s model.QuestionStatus) *model.QuestionStatus { return &s }

func intPtr(n int) *int { return &n }

func mcqOptions(correct ...bool) []model.ChoiceOption {
	options := make([]model.ChoiceOption, len(correct))
	for i, c := range correct {
		options[i] = model.ChoiceOption{
			ID:      string(rune('a' + i)),
			Text:    "option",
			Correct: c,
		}
	}
	return options
}

func TestDataIntegrityMCQ(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.UpsertRequest
		allow    bool
		rejected bool
	}{
		{
			name:     "valid two options one correct",
			req:      &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ, Options: mcqOptions(true, false)},
			rejected: false,
		},
		{
			name:     "single option rejected",
			req:      &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ, Options: mcqOptions(true)},
			rejected: true,
		},
		{
			name:     "no options rejected",
			req:      &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ},
			rejected: true,
		},
		{
			name: "duplicate option id rejected",
			req: &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ, Options: []model.ChoiceOption{
				{ID: "a", Correct: true},
				{ID: "a", Correct: false},
			}},
			rejected: true,
		},
		{
			name:     "zero correct rejected by default",
			req:      &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ, Options: mcqOptions(false, false)},
			rejected: true,
		},
		{
			name:     "zero correct allowed for implicit draft",
			req:      &model.UpsertRequest{QuestionType: model.QuestionTypeMCQ, Options: mcqOptions(false, false)},
			allow:    true,
			rejected: false,
		},
		{
			name: "zero correct allowed for explicit draft",
			req: &model.UpsertRequest{
				QuestionType: model.QuestionTypeMCQ,
				Status:       statusPtr(model.QuestionStatusDraft),
				Options:      mcqOptions(false, false),
			},
			allow:    true,
			rejected: false,
		},
		{
			name: "zero correct rejected for published even when policy allows drafts",
			req: &model.UpsertRequest{
				QuestionType: model.QuestionTypeMCQ,
				Status:       statusPtr(model.QuestionStatusPublished),
				Options:      mcqOptions(false, false),
			},
			allow:    true,
			rejected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDataIntegrityGuard(tt.allow)
			violation, err := g.Check(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if tt.rejected && violation == nil {
				t.Fatal("expected violation")
			}
			if !tt.rejected && violation != nil {
				t.Fatalf("unexpected violation: %v", violation)
			}
			if violation != nil && violation.Code != response.ErrDataIntegrityViolation {
				t.Fatalf("expected DATA_INTEGRITY_VIOLATION, got %s", violation.Code)
			}
		})
	}
}

func TestDataIntegrityEssay(t *testing.T) {
	g := NewDataIntegrityGuard(false)

	ok := &model.UpsertRequest{
		QuestionType: model.QuestionTypeEssay,
		Essay:        &model.EssayPayload{MinWordCount: intPtr(100), MaxWordCount: intPtr(500)},
	}
	if violation, _ := g.Check(context.Background(), ok); violation != nil {
		t.Fatalf("valid bounds rejected: %v", violation)
	}

	noPayload := &model.UpsertRequest{QuestionType: model.QuestionTypeEssay}
	if violation, _ := g.Check(context.Background(), noPayload); violation != nil {
		t.Fatalf("essay without payload rejected: %v", violation)
	}

	inverted := &model.UpsertRequest{
		QuestionType: model.QuestionTypeEssay,
		Essay:        &model.EssayPayload{MinWordCount: intPtr(500), MaxWordCount: intPtr(100)},
	}
	if violation, _ := g.Check(context.Background(), inverted); violation == nil {
		t.Fatal("expected violation when min exceeds max")
	}

	openEnded := &model.UpsertRequest{
		QuestionType: model.QuestionTypeEssay,
		Essay:        &model.EssayPayload{MinWordCount: intPtr(100)},
	}
	if violation, _ := g.Check(context.Background(), openEnded); violation != nil {
		t.Fatalf("one-sided bound rejected: %v", violation)
	}
}

func TestDataIntegrityTrueFalse(t *testing.T) {
	g := NewDataIntegrityGuard(false)

	ok := &model.UpsertRequest{QuestionType: model.QuestionTypeTrueFalse, Options: mcqOptions(true, false)}
	if violation, _ := g.Check(context.Background(), ok); violation != nil {
		t.Fatalf("valid pair rejected: %v", violation)
	}

	three := &model.UpsertRequest{QuestionType: model.QuestionTypeTrueFalse, Options: mcqOptions(true, false, false)}
	if violation, _ := g.Check(context.Background(), three); violation == nil {
		t.Fatal("expected violation for three options")
	}

	bothCorrect := &model.UpsertRequest{QuestionType: model.QuestionTypeTrueFalse, Options: mcqOptions(true, true)}
	if violation, _ := g.Check(context.Background(), bothCorrect); violation == nil {
		t.Fatal("expected violation for two correct options")
	}

	noneCorrect := &model.UpsertRequest{QuestionType: model.QuestionTypeTrueFalse, Options: mcqOptions(false, false)}
	if violation, _ := g.Check(context.Background(), noneCorrect); violation == nil {
		t.Fatal("expected violation for zero correct options")
	}
}

func TestDataIntegrityUnknownTypePasses(t *testing.T) {
	// The strategy resolver owns rejection of unsupported types.
	g := NewDataIntegrityGuard(false)
	req := &model.UpsertRequest{QuestionType: model.QuestionType("FILL_IN")}

	violation, err := g.Check(context.Background(), req)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if violation != nil {
		t.Fatalf("unknown type must pass through, got %v", violation)
	}
}
