package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuestionType is the closed set of supported question types.
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "MCQ"
	QuestionTypeEssay     QuestionType = "ESSAY"
	QuestionTypeTrueFalse QuestionType = "TRUE_FALSE"
)

// QuestionStatus is the publication status of a question.
type QuestionStatus string

const (
	QuestionStatusDraft     QuestionStatus = "DRAFT"
	QuestionStatusPublished QuestionStatus = "PUBLISHED"
	QuestionStatusArchived  QuestionStatus = "ARCHIVED"
)

// DefaultPoints is assigned when a request omits the points field.
const DefaultPoints = 1

// ChoiceOption is a single selectable option for MCQ and TRUE_FALSE questions.
type ChoiceOption struct {
	ID      string `json:"id" binding:"required,min=1,max=64"`
	Text    string `json:"text" binding:"required,min=1,max=2000"`
	Correct bool   `json:"correct"`
}

// ChoicePayload is the stored payload for MCQ and TRUE_FALSE questions.
type ChoicePayload struct {
	Options []ChoiceOption `json:"options"`
}

// EssayPayload is the stored payload for ESSAY questions. Word count bounds
// are optional; when both are present, MinWordCount <= MaxWordCount.
type EssayPayload struct {
	MinWordCount *int   `json:"min_word_count,omitempty" binding:"omitempty,min=0"`
	MaxWordCount *int   `json:"max_word_count,omitempty" binding:"omitempty,min=0"`
	RubricNotes  string `json:"rubric_notes,omitempty" binding:"omitempty,max=5000"`
}

// QuestionAggregate is the canonical representation of one question in a
// bank, including its resolved type-specific payload. The business key
// (UserID, BankID, SourceQuestionID) is unique; ID is assigned on first
// persist and immutable afterwards.
type QuestionAggregate struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              int                `json:"user_id"`
	BankID              uuid.UUID          `json:"bank_id"`
	SourceQuestionID    string             `json:"source_question_id"`
	QuestionType        QuestionType       `json:"question_type"`
	Title               string             `json:"title"`
	Content             string             `json:"content"`
	Points              int                `json:"points"`
	Status              QuestionStatus     `json:"status"`
	DisplayOrder        int                `json:"display_order"`
	SolutionExplanation string             `json:"solution_explanation"`
	Payload             json.RawMessage    `json:"payload"`
	Taxonomy            TaxonomyReferences `json:"taxonomy"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// FreshlyCreated reports whether the last persist inserted this aggregate.
// The store sets created_at == updated_at only on insert.
func (q *QuestionAggregate) FreshlyCreated() bool {
	return q.CreatedAt.Equal(q.UpdatedAt)
}
