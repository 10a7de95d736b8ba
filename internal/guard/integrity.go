package guard

import (
	"context"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// DataIntegrityGuard applies the structural rules of each question type,
// independent of storage state.
//
// The zero-correct policy for MCQ is explicit: when allowDraftZeroCorrect
// is true, an MCQ whose effective status is DRAFT may carry zero correct
// options (authors often sketch questions before settling the key). Any
// other status always requires at least one correct option.
type DataIntegrityGuard struct {
	allowDraftZeroCorrect bool
}

// NewDataIntegrityGuard creates a DataIntegrityGuard.
func NewDataIntegrityGuard(allowDraftZeroCorrect bool) *DataIntegrityGuard {
	return &DataIntegrityGuard{allowDraftZeroCorrect: allowDraftZeroCorrect}
}

func (g *DataIntegrityGuard) Name() string { return "data_integrity" }

func (g *DataIntegrityGuard) Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	switch req.QuestionType {
	case model.QuestionTypeMCQ:
		return g.checkMCQ(req), nil
	case model.QuestionTypeEssay:
		return g.checkEssay(req), nil
	case model.QuestionTypeTrueFalse:
		return g.checkTrueFalse(req), nil
	}
	// Unknown types are rejected downstream by the strategy resolver.
	return nil, nil
}

func (g *DataIntegrityGuard) checkMCQ(req *model.UpsertRequest) *Violation {
	if len(req.Options) < 2 {
		return Violationf(response.ErrDataIntegrityViolation,
			"mcq: at least two options are required, got %d", len(req.Options))
	}
	if id, dup := duplicateOptionID(req.Options); dup {
		return Violationf(response.ErrDataIntegrityViolation,
			"mcq: duplicate option id %q", id)
	}
	if countCorrect(req.Options) == 0 {
		if g.allowDraftZeroCorrect && req.EffectiveStatus() == model.QuestionStatusDraft {
			return nil
		}
		return Violationf(response.ErrDataIntegrityViolation,
			"mcq: at least one option must be marked correct")
	}
	return nil
}

func (g *DataIntegrityGuard) checkEssay(req *model.UpsertRequest) *Violation {
	if req.Essay == nil {
		return nil
	}
	min, max := req.Essay.MinWordCount, req.Essay.MaxWordCount
	if min != nil && max != nil && *min > *max {
		return Violationf(response.ErrDataIntegrityViolation,
			"essay: min word count %d exceeds max word count %d", *min, *max)
	}
	return nil
}

func (g *DataIntegrityGuard) checkTrueFalse(req *model.UpsertRequest) *Violation {
	if len(req.Options) != 2 {
		return Violationf(response.ErrDataIntegrityViolation,
			"true_false: exactly two options are required, got %d", len(req.Options))
	}
	if id, dup := duplicateOptionID(req.Options); dup {
		return Violationf(response.ErrDataIntegrityViolation,
			"true_false: duplicate option id %q", id)
	}
	if c := countCorrect(req.Options); c != 1 {
		return Violationf(response.ErrDataIntegrityViolation,
			"true_false: exactly one option must be marked correct, got %d", c)
	}
	return nil
}

func countCorrect(options []model.ChoiceOption) int {
	n := 0
	for _, o := range options {
		if o.Correct {
			n++
		}
	}
	return n
}

func duplicateOptionID(options []model.ChoiceOption) (string, bool) {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if _, ok := seen[o.ID]; ok {
			return o.ID, true
		}
		seen[o.ID] = struct{}{}
	}
	return "", false
}
