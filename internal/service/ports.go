package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
)

// QuestionStore persists question aggregates. Implementations must honor
// the unit of work carried in ctx when one is open.
type QuestionStore interface {
	// FindByKey loads the aggregate for the business key, or (nil, nil)
	// when none exists.
	FindByKey(ctx context.Context, userID int, bankID uuid.UUID, sourceQuestionID string) (*model.QuestionAggregate, error)

	// Upsert inserts or replaces the aggregate by its business key and
	// returns it with the internal id and timestamps assigned. On insert
	// created_at == updated_at; on replace only updated_at advances.
	Upsert(ctx context.Context, agg *model.QuestionAggregate) (*model.QuestionAggregate, error)
}

// RelationshipStore persists question-taxonomy cross references.
type RelationshipStore interface {
	// ReplaceAll atomically overwrites the full relationship set for the
	// question.
	ReplaceAll(ctx context.Context, questionID uuid.UUID, rels []model.QuestionTaxonomyRelationship) error
}

// UnitOfWork runs fn inside one transaction: every store call made with
// the ctx passed to fn joins it, and the whole body commits or rolls back
// as one.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
