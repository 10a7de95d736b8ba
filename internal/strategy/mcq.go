package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/quizforge/qbank-backend/internal/model"
)

// MCQStrategy builds multiple-choice questions.
type MCQStrategy struct{}

func (s *MCQStrategy) Type() model.QuestionType { return model.QuestionTypeMCQ }

func (s *MCQStrategy) Build(req *model.UpsertRequest) (*model.QuestionAggregate, error) {
	payload := model.ChoicePayload{
		Options: append([]model.ChoiceOption(nil), req.Options...),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal mcq payload: %w", err)
	}

	agg := newShell(req)
	agg.Payload = raw
	return agg, nil
}
