package guard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quizforge/qbank-backend/internal/model"
)

// Pipeline runs a fixed, ordered list of guards fail-fast: the first
// violation or fault stops execution and no later guard runs. The guard
// list is immutable after construction.
type Pipeline struct {
	guards []Guard
	log    zerolog.Logger
}

// NewPipeline creates a Pipeline over the given guards, in order.
func NewPipeline(log zerolog.Logger, guards ...Guard) *Pipeline {
	return &Pipeline{
		guards: guards,
		log:    log.With().Str("component", "validation_pipeline").Logger(),
	}
}

// Run executes every guard in order. Returns the first Violation, or the
// first infrastructure error, or (nil, nil) when all guards pass.
func (p *Pipeline) Run(ctx context.Context, req *model.UpsertRequest) (*Violation, error) {
	for _, g := range p.guards {
		violation, err := g.Check(ctx, req)
		if err != nil {
			p.log.Error().Err(err).Str("guard", g.Name()).Msg("Guard lookup failed")
			return nil, err
		}
		if violation != nil {
			p.log.Debug().
				Str("guard", g.Name()).
				Str("code", string(violation.Code)).
				Msg("Request rejected by guard")
			return violation, nil
		}
	}
	return nil, nil
}
