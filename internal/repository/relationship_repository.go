package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/qbank-backend/internal/model"
)

// RelationshipRepository handles question-taxonomy cross-reference rows.
// Implements service.RelationshipStore.
type RelationshipRepository struct {
	pool *pgxpool.Pool
}

// NewRelationshipRepository creates a new RelationshipRepository.
func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

// ReplaceAll overwrites the full relationship set for a question. Callers
// are expected to run this inside the same unit of work as the aggregate
// write so the delete+insert pair is atomic with it.
func (r *RelationshipRepository) ReplaceAll(ctx context.Context, questionID uuid.UUID, rels []model.QuestionTaxonomyRelationship) error {
	q := db(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`DELETE FROM question_taxonomy_relationships WHERE question_id = $1`, questionID,
	); err != nil {
		return fmt.Errorf("clear relationships: %w", err)
	}

	if len(rels) == 0 {
		return nil
	}

	types := make([]string, len(rels))
	ids := make([]string, len(rels))
	for i, rel := range rels {
		types[i] = string(rel.TaxonomyType)
		ids[i] = rel.TaxonomyID
	}

	if _, err := q.Exec(ctx,
		`INSERT INTO question_taxonomy_relationships (question_id, taxonomy_type, taxonomy_id)
		 SELECT $1, t.type, t.id
		 FROM unnest($2::text[], $3::text[]) AS t(type, id)`,
		questionID, types, ids,
	); err != nil {
		return fmt.Errorf("insert relationships: %w", err)
	}
	return nil
}

// ListByQuestion retrieves the current relationship set for a question.
func (r *RelationshipRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.QuestionTaxonomyRelationship, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT question_id, taxonomy_type, taxonomy_id
		 FROM question_taxonomy_relationships
		 WHERE question_id = $1
		 ORDER BY taxonomy_type, taxonomy_id`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []model.QuestionTaxonomyRelationship
	for rows.Next() {
		var rel model.QuestionTaxonomyRelationship
		if err := rows.Scan(&rel.QuestionID, &rel.TaxonomyType, &rel.TaxonomyID); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}
