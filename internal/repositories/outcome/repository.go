package outcome

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/protea/pkg/database"
	"github.com/Ramsey-B/protea/pkg/identifier"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// OutcomeRepository defines the interface for outcome operations
type OutcomeRepository interface {
	List(ctx context.Context) ([]models.Outcome, error)
	GetByID(ctx context.Context, id string) (*models.Outcome, error)
	Create(ctx context.Context, req models.CreateOutcomeRequest, interventionID string) (*models.Outcome, error)
}

// Repository implements OutcomeRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new outcome repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "outcomes"

var columns = []string{
	"id", "action_id", "intervention_id", "description", "evidence",
	"metric", "value", "date", "created_at",
}

// List returns all outcomes ordered by date descending
func (r *Repository) List(ctx context.Context) ([]models.Outcome, error) {
	ctx, span := tracing.StartSpan(ctx, "OutcomeRepository.List")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.OrderBy("date DESC")

	query, args := sb.Build()

	items := []models.Outcome{}
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list outcomes")
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}

	return items, nil
}

// GetByID gets an outcome by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Outcome, error) {
	ctx, span := tracing.StartSpan(ctx, "OutcomeRepository.GetByID")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var item models.Outcome
	err := r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get outcome by ID")
		return nil, fmt.Errorf("failed to get outcome: %w", err)
	}

	return &item, nil
}

// Create inserts a new outcome. The intervention reference is passed in by
// the caller, copied from the parent action, never taken from the request
// body.
func (r *Repository) Create(ctx context.Context, req models.CreateOutcomeRequest, interventionID string) (*models.Outcome, error) {
	ctx, span := tracing.StartSpan(ctx, "OutcomeRepository.Create")
	defer span.End()

	id := req.ID
	if id == "" {
		id = identifier.New(identifier.PrefixOutcome)
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(tableName)
	ib.Cols(columns...)
	ib.Values(
		id, req.ActionID, interventionID, req.Description, req.Evidence,
		req.Metric, req.Value, date, time.Now(),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create outcome")
		return nil, fmt.Errorf("failed to create outcome: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":              id,
		"action_id":       req.ActionID,
		"intervention_id": interventionID,
	}).Info("created outcome")

	return r.GetByID(ctx, id)
}
