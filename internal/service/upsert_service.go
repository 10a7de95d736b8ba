package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/guard"
	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
	"github.com/quizforge/qbank-backend/internal/strategy"
)

// UpsertError is the typed failure surfaced by Upsert. Detail is always
// safe to show the caller; internal fault details stay in the logs.
type UpsertError struct {
	Code   response.ErrCode
	Detail string
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// AsUpsertError unwraps err into an *UpsertError if it is one.
func AsUpsertError(err error) (*UpsertError, bool) {
	var ue *UpsertError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// UpsertService is the transaction script for create-or-update of one
// question: validation pipeline, strategy resolution, merge with prior
// state, aggregate persist, and relationship replacement, all inside one
// unit of work.
type UpsertService struct {
	pipeline      *guard.Pipeline
	resolver      *strategy.Resolver
	uow           UnitOfWork
	questions     QuestionStore
	relationships RelationshipStore
	log           zerolog.Logger
}

// NewUpsertService creates an UpsertService.
func NewUpsertService(
	pipeline *guard.Pipeline,
	resolver *strategy.Resolver,
	uow UnitOfWork,
	questions QuestionStore,
	relationships RelationshipStore,
	log zerolog.Logger,
) *UpsertService {
	return &UpsertService{
		pipeline:      pipeline,
		resolver:      resolver,
		uow:           uow,
		questions:     questions,
		relationships: relationships,
		log:           log.With().Str("component", "upsert_service").Logger(),
	}
}

// Upsert runs the full write path. On failure the returned error is
// always an *UpsertError; no partial writes survive.
func (s *UpsertService) Upsert(ctx context.Context, req *model.UpsertRequest) (result *model.UpsertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("source_question_id", req.SourceQuestionID).
				Msg("Upsert panicked")
			result = nil
			err = &UpsertError{Code: response.ErrUpsert, Detail: "unexpected internal error"}
		}
	}()

	// 1. Validation pipeline, fail-fast. Nothing has been written yet.
	violation, err := s.pipeline.Run(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("Validation lookup failed")
		return nil, &UpsertError{Code: response.ErrPersistenceFailure, Detail: "validation data could not be loaded"}
	}
	if violation != nil {
		return nil, &UpsertError{Code: violation.Code, Detail: violation.Detail}
	}

	// 2. Resolve strategy, build the fresh aggregate.
	strat, err := s.resolver.Resolve(req.QuestionType)
	if err != nil {
		return nil, &UpsertError{
			Code:   response.ErrUnsupportedQuestionType,
			Detail: fmt.Sprintf("question type %q is not supported", req.QuestionType),
		}
	}
	agg, err := strat.Build(req)
	if err != nil {
		s.log.Error().Err(err).Msg("Strategy build failed")
		return nil, &UpsertError{Code: response.ErrUpsert, Detail: "question payload could not be built"}
	}

	// 3–5. One unit of work: load prior state, merge, persist, replace
	// relationships. Any failure rolls the whole thing back.
	txErr := s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.questions.FindByKey(ctx, req.UserID, req.BankID, req.SourceQuestionID)
		if err != nil {
			return fmt.Errorf("find existing: %w", err)
		}
		if existing != nil {
			mergePreserve(agg, existing, req)
		}

		persisted, err := s.questions.Upsert(ctx, agg)
		if err != nil {
			return fmt.Errorf("persist aggregate: %w", err)
		}

		rels := ExpandRelationships(persisted)
		if err := s.relationships.ReplaceAll(ctx, persisted.ID, rels); err != nil {
			return fmt.Errorf("replace relationships: %w", err)
		}

		operation := model.OperationUpdated
		if persisted.FreshlyCreated() {
			operation = model.OperationCreated
		}
		result = &model.UpsertResult{
			QuestionID:        persisted.ID,
			SourceQuestionID:  persisted.SourceQuestionID,
			Operation:         operation,
			RelationshipCount: len(rels),
		}
		return nil
	})
	if txErr != nil {
		s.log.Error().
			Err(txErr).
			Int("user_id", req.UserID).
			Str("bank_id", req.BankID.String()).
			Str("source_question_id", req.SourceQuestionID).
			Msg("Upsert transaction failed")
		return nil, &UpsertError{Code: response.ErrPersistenceFailure, Detail: "the question could not be stored"}
	}

	s.log.Info().
		Str("question_id", result.QuestionID.String()).
		Str("operation", string(result.Operation)).
		Int("relationships", result.RelationshipCount).
		Msg("Question upserted")

	return result, nil
}

// mergePreserve copies the three merge-preserve scalar fields from the
// stored aggregate wherever the incoming request left them unset. Fields
// the request did set always win. Taxonomy is not merged: omitted
// collections are treated as cleared.
func mergePreserve(agg *model.QuestionAggregate, existing *model.QuestionAggregate, req *model.UpsertRequest) {
	if req.Status == nil {
		agg.Status = existing.Status
	}
	if req.DisplayOrder == nil {
		agg.DisplayOrder = existing.DisplayOrder
	}
	if req.SolutionExplanation == nil {
		agg.SolutionExplanation = existing.SolutionExplanation
	}
}
