// Package strategy builds the type-specific payload of a question
// aggregate. The mapping from question type to strategy is an explicit
// compile-time switch over the closed enum; adding a type means adding a
// case, nothing dynamic.
package strategy

import (
	"errors"
	"fmt"

	"github.com/quizforge/qbank-backend/internal/model"
)

// ErrUnsupportedType is returned when the question type is outside the
// closed enum.
var ErrUnsupportedType = errors.New("unsupported question type")

// Strategy turns a validated request into a fresh, unsaved aggregate with
// the type-specific payload resolved.
type Strategy interface {
	Type() model.QuestionType
	Build(req *model.UpsertRequest) (*model.QuestionAggregate, error)
}

// Resolver maps the closed question type enum to its strategy.
type Resolver struct {
	mcq       MCQStrategy
	essay     EssayStrategy
	trueFalse TrueFalseStrategy
}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the strategy for t, or ErrUnsupportedType.
func (r *Resolver) Resolve(t model.QuestionType) (Strategy, error) {
	switch t {
	case model.QuestionTypeMCQ:
		return &r.mcq, nil
	case model.QuestionTypeEssay:
		return &r.essay, nil
	case model.QuestionTypeTrueFalse:
		return &r.trueFalse, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
}

// newShell builds the aggregate skeleton shared by every strategy: key
// fields, scalar metadata with defaults applied, and the request's
// taxonomy references. Timestamps and the internal id stay zero until the
// store persists the aggregate.
func newShell(req *model.UpsertRequest) *model.QuestionAggregate {
	agg := &model.QuestionAggregate{
		UserID:           req.UserID,
		BankID:           req.BankID,
		SourceQuestionID: req.SourceQuestionID,
		QuestionType:     req.QuestionType,
		Title:            req.Title,
		Content:          req.Content,
		Points:           model.DefaultPoints,
		Status:           req.EffectiveStatus(),
		Taxonomy:         req.TaxonomyOrEmpty(),
	}
	if req.Points != nil {
		agg.Points = *req.Points
	}
	if req.DisplayOrder != nil {
		agg.DisplayOrder = *req.DisplayOrder
	}
	if req.SolutionExplanation != nil {
		agg.SolutionExplanation = *req.SolutionExplanation
	}
	return agg
}
