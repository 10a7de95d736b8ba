package service

import (
	"github.com/quizforge/qbank-backend/internal/model"
)

// ExpandRelationships fans an aggregate's taxonomy references out into
// flat relationship rows: one per present category level, one per tag,
// one per quiz, one for the difficulty level. Duplicate (type, id) pairs
// collapse to a single row. Pure function of the aggregate's current
// reference set; prior relationship state plays no part.
func ExpandRelationships(agg *model.QuestionAggregate) []model.QuestionTaxonomyRelationship {
	var rels []model.QuestionTaxonomyRelationship
	seen := make(map[model.TaxonomyType]map[string]struct{})

	add := func(t model.TaxonomyType, id string) {
		if id == "" {
			return
		}
		ids, ok := seen[t]
		if !ok {
			ids = make(map[string]struct{})
			seen[t] = ids
		}
		if _, dup := ids[id]; dup {
			return
		}
		ids[id] = struct{}{}
		rels = append(rels, model.QuestionTaxonomyRelationship{
			QuestionID:   agg.ID,
			TaxonomyType: t,
			TaxonomyID:   id,
		})
	}

	for i, id := range agg.Taxonomy.CategoryLevels() {
		if t, ok := model.CategoryTypeForLevel(i + 1); ok {
			add(t, id)
		}
	}
	for _, tag := range agg.Taxonomy.Tags {
		add(model.TaxonomyTypeTag, tag)
	}
	for _, quiz := range agg.Taxonomy.Quizzes {
		add(model.TaxonomyTypeQuiz, quiz)
	}
	add(model.TaxonomyTypeDifficultyLevel, agg.Taxonomy.DifficultyLevel)

	return rels
}
