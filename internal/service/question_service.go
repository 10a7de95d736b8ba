package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/repository"
)

// QuestionService serves the read side of the question bank: thin lookups
// over the denormalized aggregate and its relationship rows. All writes go
// through UpsertService.
type QuestionService struct {
	questionRepo     *repository.QuestionRepository
	relationshipRepo *repository.RelationshipRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, relationshipRepo *repository.RelationshipRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, relationshipRepo: relationshipRepo}
}

// GetByKey retrieves one question with its current relationship set, or
// (nil, nil, nil) when the key is unknown.
func (s *QuestionService) GetByKey(ctx context.Context, userID int, bankID uuid.UUID, sourceQuestionID string) (*model.QuestionAggregate, []model.QuestionTaxonomyRelationship, error) {
	agg, err := s.questionRepo.FindByKey(ctx, userID, bankID, sourceQuestionID)
	if err != nil || agg == nil {
		return nil, nil, err
	}

	rels, err := s.relationshipRepo.ListByQuestion(ctx, agg.ID)
	if err != nil {
		return nil, nil, err
	}
	return agg, rels, nil
}

// ListByBank retrieves all questions in a bank.
func (s *QuestionService) ListByBank(ctx context.Context, bankID uuid.UUID) ([]model.QuestionAggregate, error) {
	return s.questionRepo.ListByBank(ctx, bankID)
}
