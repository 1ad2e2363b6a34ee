package snapshot

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"golang.org/x/sync/errgroup"

	"github.com/Ramsey-B/protea/internal/repositories/action"
	"github.com/Ramsey-B/protea/internal/repositories/decision"
	"github.com/Ramsey-B/protea/internal/repositories/intervention"
	"github.com/Ramsey-B/protea/internal/repositories/outcome"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// Loader fetches all four record collections. There is no partial load: one
// failed collection fails the whole fetch and the previous snapshot stays in
// place.
type Loader struct {
	interventions intervention.InterventionRepository
	decisions     decision.DecisionRepository
	actions       action.ActionRepository
	outcomes      outcome.OutcomeRepository
	logger        ectologger.Logger
}

// NewLoader creates a new dataset loader
func NewLoader(
	interventions intervention.InterventionRepository,
	decisions decision.DecisionRepository,
	actions action.ActionRepository,
	outcomes outcome.OutcomeRepository,
	logger ectologger.Logger,
) *Loader {
	return &Loader{
		interventions: interventions,
		decisions:     decisions,
		actions:       actions,
		outcomes:      outcomes,
		logger:        logger,
	}
}

// Load fetches the four collections concurrently and returns one consistent
// dataset in gateway order.
func (l *Loader) Load(ctx context.Context) (models.Dataset, error) {
	ctx, span := tracing.StartSpan(ctx, "snapshot.Loader.Load")
	defer span.End()

	var dataset models.Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := l.interventions.List(gctx)
		if err != nil {
			return err
		}
		dataset.Interventions = items
		return nil
	})
	g.Go(func() error {
		items, err := l.decisions.List(gctx)
		if err != nil {
			return err
		}
		dataset.Decisions = items
		return nil
	})
	g.Go(func() error {
		items, err := l.actions.List(gctx)
		if err != nil {
			return err
		}
		dataset.Actions = items
		return nil
	})
	g.Go(func() error {
		items, err := l.outcomes.List(gctx)
		if err != nil {
			return err
		}
		dataset.Outcomes = items
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.WithContext(ctx).WithError(err).Error("failed to load dataset")
		return models.Dataset{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	return dataset, nil
}
