package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/qbank-backend/internal/model"
)

// TaxonomyRepository loads taxonomy data for a bank. Implements
// service.SnapshotLoader.
type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

// LoadSnapshot assembles the full taxonomy snapshot for a bank: category
// ids per level, tags, quizzes, and difficulty levels.
func (r *TaxonomyRepository) LoadSnapshot(ctx context.Context, bankID uuid.UUID) (*model.TaxonomySnapshot, error) {
	snapshot := &model.TaxonomySnapshot{BankID: bankID}
	q := db(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, level FROM taxonomy_categories
		 WHERE bank_id = $1 AND level BETWEEN 1 AND $2`,
		bankID, model.MaxCategoryDepth,
	)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			return nil, err
		}
		snapshot.CategoryLevels[level-1] = append(snapshot.CategoryLevels[level-1], id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if snapshot.Tags, err = r.loadIDs(ctx, q, `SELECT id FROM taxonomy_tags WHERE bank_id = $1`, bankID); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	if snapshot.Quizzes, err = r.loadIDs(ctx, q, `SELECT id FROM taxonomy_quizzes WHERE bank_id = $1`, bankID); err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	if snapshot.DifficultyLevels, err = r.loadIDs(ctx, q, `SELECT id FROM taxonomy_difficulty_levels WHERE bank_id = $1`, bankID); err != nil {
		return nil, fmt.Errorf("load difficulty levels: %w", err)
	}

	return snapshot, nil
}

func (r *TaxonomyRepository) loadIDs(ctx context.Context, q querier, sql string, bankID uuid.UUID) ([]string, error) {
	rows, err := q.Query(ctx, sql, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
