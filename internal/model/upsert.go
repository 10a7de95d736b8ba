package model

import (
	"github.com/google/uuid"
)

// SessionOrigin captures where a session's requests come from. A baseline is
// recorded at login; later requests are compared against it.
type SessionOrigin struct {
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent"`
}

// UpsertRequest is the create-or-update payload for one question. Identity
// and origin fields are filled from the authenticated context, never from
// the request body. Omitted scalar metadata (nil pointers) is preserved
// from the stored aggregate on update; omitted taxonomy is treated as
// cleared.
type UpsertRequest struct {
	UserID int            `json:"-"`
	BankID uuid.UUID      `json:"-"`
	Origin *SessionOrigin `json:"-"`

	SourceQuestionID    string              `json:"source_question_id" binding:"required,min=1,max=64"`
	QuestionType        QuestionType        `json:"question_type" binding:"required"`
	Title               string              `json:"title" binding:"required,min=1,max=500"`
	Content             string              `json:"content" binding:"required,min=1,max=10000"`
	Points              *int                `json:"points" binding:"omitempty,min=0,max=1000"`
	Status              *QuestionStatus     `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	DisplayOrder        *int                `json:"display_order" binding:"omitempty,min=0"`
	SolutionExplanation *string             `json:"solution_explanation" binding:"omitempty,max=10000"`
	Taxonomy            *TaxonomyReferences `json:"taxonomy" binding:"omitempty"`
	Options             []ChoiceOption      `json:"options" binding:"omitempty,dive"`
	Essay               *EssayPayload       `json:"essay" binding:"omitempty"`
}

// EffectiveStatus returns the requested status, or DRAFT when omitted.
func (r *UpsertRequest) EffectiveStatus() QuestionStatus {
	if r.Status != nil {
		return *r.Status
	}
	return QuestionStatusDraft
}

// TaxonomyOrEmpty returns the referenced taxonomy, or a zero value when the
// request omitted the field entirely.
func (r *UpsertRequest) TaxonomyOrEmpty() TaxonomyReferences {
	if r.Taxonomy == nil {
		return TaxonomyReferences{}
	}
	return *r.Taxonomy
}

// UpsertOperation reports whether an upsert inserted or replaced.
type UpsertOperation string

const (
	OperationCreated UpsertOperation = "created"
	OperationUpdated UpsertOperation = "updated"
)

// UpsertResult is the successful outcome of one upsert call.
type UpsertResult struct {
	QuestionID        uuid.UUID       `json:"question_id"`
	SourceQuestionID  string          `json:"source_question_id"`
	Operation         UpsertOperation `json:"operation"`
	RelationshipCount int             `json:"relationship_count"`
}
