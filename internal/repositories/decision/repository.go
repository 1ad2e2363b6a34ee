package decision

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

// DecisionRepository defines the interface for decision operations
type DecisionRepository interface {
	List(ctx context.Context) ([]models.Decision, error)
	GetByID(ctx context.Context, id string) (*models.Decision, error)
	Create(ctx context.Context, req models.CreateDecisionRequest) (*models.Decision, error)
}

// Repository implements DecisionRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new decision repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "decisions"

var columns = []string{
	"id", "intervention_id", "ddd_tool", "data_viewed", "insight",
	"decision_made", "made_by", "date", "notes", "created_at",
}

// List returns all decisions ordered by date descending
func (r *Repository) List(ctx context.Context) ([]models.Decision, error) {
	ctx, span := tracing.StartSpan(ctx, "DecisionRepository.List")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.OrderBy("date DESC")

	query, args := sb.Build()

	items := []models.Decision{}
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list decisions")
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}

	return items, nil
}

// GetByID gets a decision by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Decision, error) {
	ctx, span := tracing.StartSpan(ctx, "DecisionRepository.GetByID")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var item models.Decision
	err := r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get decision by ID")
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	return &item, nil
}

// Create inserts a new decision. The caller is responsible for verifying the
// parent intervention exists before calling this.
func (r *Repository) Create(ctx context.Context, req models.CreateDecisionRequest) (*models.Decision, error) {
	ctx, span := tracing.StartSpan(ctx, "DecisionRepository.Create")
	defer span.End()

	id := req.ID
	if id == "" {
		id = identifier.New(identifier.PrefixDecision)
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(tableName)
	ib.Cols(columns...)
	ib.Values(
		id, req.InterventionID, req.DDDTool, req.DataViewed, req.Insight,
		req.DecisionMade, req.MadeBy, date, req.Notes, time.Now(),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create decision")
		return nil, fmt.Errorf("failed to create decision: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":              id,
		"intervention_id": req.InterventionID,
	}).Info("created decision")

	return r.GetByID(ctx, id)
}
