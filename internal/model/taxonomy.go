package model

import (
	"github.com/google/uuid"
)

// TaxonomyType identifies which taxonomy dimension a reference points into.
type TaxonomyType string

const (
	TaxonomyTypeCategoryLevel1  TaxonomyType = "category_level_1"
	TaxonomyTypeCategoryLevel2  TaxonomyType = "category_level_2"
	TaxonomyTypeCategoryLevel3  TaxonomyType = "category_level_3"
	TaxonomyTypeCategoryLevel4  TaxonomyType = "category_level_4"
	TaxonomyTypeTag             TaxonomyType = "tag"
	TaxonomyTypeQuiz            TaxonomyType = "quiz"
	TaxonomyTypeDifficultyLevel TaxonomyType = "difficulty_level"
)

// MaxCategoryDepth is the number of nested category levels a bank supports.
const MaxCategoryDepth = 4

// CategoryTypeForLevel maps a 1-based category level to its TaxonomyType.
// Returns false for levels outside [1, MaxCategoryDepth].
func CategoryTypeForLevel(level int) (TaxonomyType, bool) {
	switch level {
	case 1:
		return TaxonomyTypeCategoryLevel1, true
	case 2:
		return TaxonomyTypeCategoryLevel2, true
	case 3:
		return TaxonomyTypeCategoryLevel3, true
	case 4:
		return TaxonomyTypeCategoryLevel4, true
	}
	return "", false
}

// TaxonomyReferences groups every taxonomy reference a question carries.
// Category levels must form a contiguous chain starting at level 1.
type TaxonomyReferences struct {
	CategoryLevel1  string   `json:"category_level_1,omitempty" binding:"omitempty,max=64"`
	CategoryLevel2  string   `json:"category_level_2,omitempty" binding:"omitempty,max=64"`
	CategoryLevel3  string   `json:"category_level_3,omitempty" binding:"omitempty,max=64"`
	CategoryLevel4  string   `json:"category_level_4,omitempty" binding:"omitempty,max=64"`
	Tags            []string `json:"tags,omitempty" binding:"omitempty,dive,min=1,max=64"`
	Quizzes         []string `json:"quizzes,omitempty" binding:"omitempty,dive,min=1,max=64"`
	DifficultyLevel string   `json:"difficulty_level,omitempty" binding:"omitempty,max=64"`
}

// CategoryLevels returns the referenced category ids indexed by 1-based
// level. Empty strings mean the level is not referenced.
func (t TaxonomyReferences) CategoryLevels() [MaxCategoryDepth]string {
	return [MaxCategoryDepth]string{
		t.CategoryLevel1,
		t.CategoryLevel2,
		t.CategoryLevel3,
		t.CategoryLevel4,
	}
}

// IsEmpty reports whether no taxonomy dimension is referenced at all.
func (t TaxonomyReferences) IsEmpty() bool {
	return t.CategoryLevel1 == "" && t.CategoryLevel2 == "" &&
		t.CategoryLevel3 == "" && t.CategoryLevel4 == "" &&
		len(t.Tags) == 0 && len(t.Quizzes) == 0 && t.DifficultyLevel == ""
}

// TaxonomySnapshot is the read-only set of valid taxonomy ids for one bank.
// It is loaded from PostgreSQL and cached in Redis, so it must round-trip
// through JSON.
type TaxonomySnapshot struct {
	BankID           uuid.UUID                  `json:"bank_id"`
	CategoryLevels   [MaxCategoryDepth][]string `json:"category_levels"`
	Tags             []string                   `json:"tags"`
	Quizzes          []string                   `json:"quizzes"`
	DifficultyLevels []string                   `json:"difficulty_levels"`
}

// HasCategory reports whether the given id exists at the 1-based level.
func (s *TaxonomySnapshot) HasCategory(level int, id string) bool {
	if level < 1 || level > MaxCategoryDepth {
		return false
	}
	return contains(s.CategoryLevels[level-1], id)
}

// HasTag reports whether the tag id exists in the bank.
func (s *TaxonomySnapshot) HasTag(id string) bool { return contains(s.Tags, id) }

// HasQuiz reports whether the quiz id exists in the bank.
func (s *TaxonomySnapshot) HasQuiz(id string) bool { return contains(s.Quizzes, id) }

// HasDifficultyLevel reports whether the difficulty level id exists in the bank.
func (s *TaxonomySnapshot) HasDifficultyLevel(id string) bool {
	return contains(s.DifficultyLevels, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// QuestionTaxonomyRelationship is one flat cross-reference row linking a
// question to a taxonomy entry. The full set for a question is recomputed
// and replaced on every upsert.
type QuestionTaxonomyRelationship struct {
	QuestionID   uuid.UUID    `json:"question_id"`
	TaxonomyType TaxonomyType `json:"taxonomy_type"`
	TaxonomyID   string       `json:"taxonomy_id"`
}
