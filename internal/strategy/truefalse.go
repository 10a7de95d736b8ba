package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/quizforge/qbank-backend/internal/model"
)

// TrueFalseStrategy builds binary true/false questions. Structure (exactly
// two options, exactly one correct) is enforced upstream by the data
// integrity guard.
type TrueFalseStrategy struct{}

func (s *TrueFalseStrategy) Type() model.QuestionType { return model.QuestionTypeTrueFalse }

func (s *TrueFalseStrategy) Build(req *model.UpsertRequest) (*model.QuestionAggregate, error) {
	payload := model.ChoicePayload{
		Options: append([]model.ChoiceOption(nil), req.Options...),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal true_false payload: %w", err)
	}

	agg := newShell(req)
	agg.Payload = raw
	return agg, nil
}
