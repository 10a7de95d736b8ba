package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/qbank-backend/internal/model"
)

// BankRepository handles question bank data access. Implements
// guard.BankOwnership.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

// IsOwnedBy reports whether the bank exists and belongs to the user.
func (r *BankRepository) IsOwnedBy(ctx context.Context, bankID uuid.UUID, userID int) (bool, error) {
	var owned bool
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM question_banks WHERE id = $1 AND author_id = $2)`,
		bankID, userID,
	).Scan(&owned)
	return owned, err
}

// GetByID retrieves a bank.
func (r *BankRepository) GetByID(ctx context.Context, bankID uuid.UUID) (*model.QuestionBank, error) {
	b := &model.QuestionBank{}
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, author_id, name, description, created_at, updated_at
		 FROM question_banks WHERE id = $1`, bankID,
	).Scan(&b.ID, &b.AuthorID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new bank.
func (r *BankRepository) Create(ctx context.Context, bank *model.QuestionBank) error {
	return db(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO question_banks (author_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		bank.AuthorID, bank.Name, bank.Description,
	).Scan(&bank.ID, &bank.CreatedAt, &bank.UpdatedAt)
}
