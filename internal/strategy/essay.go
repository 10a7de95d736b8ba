package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/quizforge/qbank-backend/internal/model"
)

// EssayStrategy builds free-text essay questions.
type EssayStrategy struct{}

func (s *EssayStrategy) Type() model.QuestionType { return model.QuestionTypeEssay }

func (s *EssayStrategy) Build(req *model.UpsertRequest) (*model.QuestionAggregate, error) {
	payload := model.EssayPayload{}
	if req.Essay != nil {
		payload = *req.Essay
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal essay payload: %w", err)
	}

	agg := newShell(req)
	agg.Payload = raw
	return agg, nil
}
