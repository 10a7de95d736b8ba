package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionBank represents a collection of questions owned by one author.
type QuestionBank struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    int       `json:"author_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
