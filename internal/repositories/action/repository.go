package action

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

// ActionRepository defines the interface for action operations
type ActionRepository interface {
	List(ctx context.Context) ([]models.Action, error)
	GetByID(ctx context.Context, id string) (*models.Action, error)
	Create(ctx context.Context, req models.CreateActionRequest, interventionID string) (*models.Action, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateActionStatusRequest) (*models.Action, error)
}

// Repository implements ActionRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new action repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "actions"

var columns = []string{
	"id", "decision_id", "intervention_id", "action_taken", "responsible",
	"status", "target_date", "completed_date", "notes", "created_at",
}

// List returns all actions ordered by target date descending
func (r *Repository) List(ctx context.Context) ([]models.Action, error) {
	ctx, span := tracing.StartSpan(ctx, "ActionRepository.List")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.OrderBy("target_date DESC")

	query, args := sb.Build()

	items := []models.Action{}
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list actions")
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}

	return items, nil
}

// GetByID gets an action by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Action, error) {
	ctx, span := tracing.StartSpan(ctx, "ActionRepository.GetByID")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(tableName)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var item models.Action
	err := r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get action by ID")
		return nil, fmt.Errorf("failed to get action: %w", err)
	}

	return &item, nil
}

// Create inserts a new action. The intervention reference is passed in by the
// caller, copied from the parent decision, never taken from the request body.
func (r *Repository) Create(ctx context.Context, req models.CreateActionRequest, interventionID string) (*models.Action, error) {
	ctx, span := tracing.StartSpan(ctx, "ActionRepository.Create")
	defer span.End()

	id := req.ID
	if id == "" {
		id = identifier.New(identifier.PrefixAction)
	}
	status := req.Status
	if status == "" {
		status = models.ActionStatusPlanned
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(tableName)
	ib.Cols(columns...)
	ib.Values(
		id, req.DecisionID, interventionID, req.ActionTaken, req.Responsible,
		status, req.TargetDate, req.CompletedDate, req.Notes, time.Now(),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create action")
		return nil, fmt.Errorf("failed to create action: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":              id,
		"decision_id":     req.DecisionID,
		"intervention_id": interventionID,
	}).Info("created action")

	return r.GetByID(ctx, id)
}

// UpdateStatus moves an action through its status lifecycle. The completed
// date is only written when provided, so a move back to In Progress keeps the
// previous value unless the caller clears it.
func (r *Repository) UpdateStatus(ctx context.Context, id string, req models.UpdateActionStatusRequest) (*models.Action, error) {
	ctx, span := tracing.StartSpan(ctx, "ActionRepository.UpdateStatus")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(tableName)
	assignments := []string{ub.Assign("status", req.Status)}
	if req.CompletedDate != "" {
		assignments = append(assignments, ub.Assign("completed_date", req.CompletedDate))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update action status")
		return nil, fmt.Errorf("failed to update action status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, nil
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":     id,
		"status": req.Status,
	}).Info("updated action status")

	return r.GetByID(ctx, id)
}
