package intervention

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

// InterventionRepository defines the interface for intervention operations
type InterventionRepository interface {
	List(ctx context.Context) ([]models.Intervention, error)
	GetByID(ctx context.Context, id string) (*models.Intervention, error)
	Upsert(ctx context.Context, req models.UpsertInterventionRequest) (*models.Intervention, error)
	Delete(ctx context.Context, id string) error
}

// Repository implements InterventionRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new intervention repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "interventions"

var columns = []string{
	"id", "province", "district", "pm", "owner_title", "owner_name", "team",
	"type", "grade", "subject", "focus", "level", "entity_name", "stage",
	"phase", "description", "start_date", "end_date", "schools", "learners",
	"confidence", "risks", "updated_at",
}

// List returns all interventions ordered by province ascending
func (r *Repository) List(ctx context.Context) ([]models.Intervention, error) {
	ctx, span := tracing.StartSpan(ctx, "InterventionRepository.List")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.OrderBy("province ASC")

	query, args := sb.Build()

	items := []models.Intervention{}
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list interventions")
		return nil, fmt.Errorf("failed to list interventions: %w", err)
	}

	return items, nil
}

// GetByID gets an intervention by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Intervention, error) {
	ctx, span := tracing.StartSpan(ctx, "InterventionRepository.GetByID")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var item models.Intervention
	err := r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get intervention by ID")
		return nil, fmt.Errorf("failed to get intervention: %w", err)
	}

	return &item, nil
}

// Upsert inserts or replaces an intervention keyed by ID. An empty ID gets a
// generated code. The update timestamp is stamped here, not taken from the
// caller.
func (r *Repository) Upsert(ctx context.Context, req models.UpsertInterventionRequest) (*models.Intervention, error) {
	ctx, span := tracing.StartSpan(ctx, "InterventionRepository.Upsert")
	defer span.End()

	id := req.ID
	if id == "" {
		id = identifier.New(identifier.PrefixIntervention)
	}
	now := time.Now()

	ib := database.NewInsertBuilder()
	ib.InsertInto(tableName)
	ib.Cols(columns...)
	ib.Values(
		id, req.Province, req.District, req.PM, req.OwnerTitle, req.OwnerName,
		req.Team, req.Type, req.Grade, req.Subject, req.Focus, req.Level,
		req.EntityName, req.Stage, req.Phase, req.Description, req.StartDate,
		req.EndDate, req.Schools.Int(), req.Learners.Int(), req.Confidence,
		req.Risks, now,
	)

	ub := ib.OnConflict("id")
	assignments := make([]string, 0, len(columns)-1)
	for _, col := range columns[1:] {
		assignments = append(assignments, ub.Assign(col, database.Excluded(col)))
	}
	ub.Set(assignments...)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to upsert intervention")
		return nil, fmt.Errorf("failed to upsert intervention: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":       id,
		"province": req.Province,
		"type":     req.Type,
	}).Info("upserted intervention")

	return r.GetByID(ctx, id)
}

// Delete removes an intervention by ID. Dependent decisions, actions and
// outcomes are NOT cascaded; they become orphans and are excluded from
// reconstructed chains.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "InterventionRepository.Delete")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)
	db.Where(db.Equal("id", id))

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete intervention")
		return fmt.Errorf("failed to delete intervention: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted intervention")

	return nil
}
