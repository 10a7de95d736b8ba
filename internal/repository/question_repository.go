package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/qbank-backend/internal/model"
)

// QuestionRepository handles question aggregate data access. Implements
// service.QuestionStore.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, user_id, bank_id, source_question_id, question_type, title, content,
	points, status, display_order, solution_explanation, payload, taxonomy, created_at, updated_at`

// FindByKey loads the aggregate for (userID, bankID, sourceQuestionID),
// or (nil, nil) when none exists.
func (r *QuestionRepository) FindByKey(ctx context.Context, userID int, bankID uuid.UUID, sourceQuestionID string) (*model.QuestionAggregate, error) {
	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE user_id = $1 AND bank_id = $2 AND source_question_id = $3`,
		userID, bankID, sourceQuestionID,
	)

	agg, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return agg, nil
}

// Upsert inserts or replaces the aggregate by its business key. The
// statement-level NOW() guarantees created_at == updated_at exactly on
// insert, which is what the orchestrator uses to report created vs
// updated.
func (r *QuestionRepository) Upsert(ctx context.Context, agg *model.QuestionAggregate) (*model.QuestionAggregate, error) {
	taxonomy, err := json.Marshal(agg.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("marshal taxonomy: %w", err)
	}

	persisted := *agg
	err = db(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO questions
		   (user_id, bank_id, source_question_id, question_type, title, content,
		    points, status, display_order, solution_explanation, payload, taxonomy,
		    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		 ON CONFLICT (user_id, bank_id, source_question_id) DO UPDATE SET
		   question_type = EXCLUDED.question_type,
		   title = EXCLUDED.title,
		   content = EXCLUDED.content,
		   points = EXCLUDED.points,
		   status = EXCLUDED.status,
		   display_order = EXCLUDED.display_order,
		   solution_explanation = EXCLUDED.solution_explanation,
		   payload = EXCLUDED.payload,
		   taxonomy = EXCLUDED.taxonomy,
		   updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		agg.UserID, agg.BankID, agg.SourceQuestionID, agg.QuestionType, agg.Title, agg.Content,
		agg.Points, agg.Status, agg.DisplayOrder, agg.SolutionExplanation, agg.Payload, taxonomy,
	).Scan(&persisted.ID, &persisted.CreatedAt, &persisted.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert question: %w", err)
	}
	return &persisted, nil
}

// ListByBank retrieves all questions in a bank ordered by display order.
func (r *QuestionRepository) ListByBank(ctx context.Context, bankID uuid.UUID) ([]model.QuestionAggregate, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions WHERE bank_id = $1
		 ORDER BY display_order, source_question_id`, bankID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.QuestionAggregate
	for rows.Next() {
		agg, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *agg)
	}
	return questions, rows.Err()
}

func scanQuestion(row pgx.Row) (*model.QuestionAggregate, error) {
	var agg model.QuestionAggregate
	var taxonomy []byte
	if err := row.Scan(
		&agg.ID, &agg.UserID, &agg.BankID, &agg.SourceQuestionID, &agg.QuestionType,
		&agg.Title, &agg.Content, &agg.Points, &agg.Status, &agg.DisplayOrder,
		&agg.SolutionExplanation, &agg.Payload, &taxonomy, &agg.CreatedAt, &agg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(taxonomy) > 0 {
		if err := json.Unmarshal(taxonomy, &agg.Taxonomy); err != nil {
			return nil, fmt.Errorf("decode taxonomy: %w", err)
		}
	}
	return &agg, nil
}
