package action

import (
	"net/http"
	"slices"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/internal/repositories/action"
	"github.com/Ramsey-B/protea/internal/repositories/decision"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/notify"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

var validate = validator.New()

// Register registers action routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.PATCH("/:id/status", UpdateStatus)
}

// List returns all actions ordered by target date, newest first
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "action_handler.List")
	defer span.End()

	ctx, repo, err := ectoinject.GetContext[*action.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	items, err := repo.List(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to list actions")
	}

	return c.JSON(http.StatusOK, models.ActionListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// Create logs an action against an existing decision. The intervention
// reference is copied from the decision, never taken from the request.
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "action_handler.Create")
	defer span.End()

	var req models.CreateActionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Status != "" && !slices.Contains(models.ActionStatuses, req.Status) {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	ctx, decisions, err := ectoinject.GetContext[*decision.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	parent, err := decisions.GetByID(ctx, req.DecisionID)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to check decision")
	}
	if parent == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "decision_id does not reference an existing decision")
	}

	ctx, repo, err := ectoinject.GetContext[*action.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.Create(ctx, req, parent.InterventionID)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create action")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "actions", "insert", result.ID)
	}

	return c.JSON(http.StatusCreated, models.ActionResponse{Action: *result})
}

// UpdateStatus moves an action through its status lifecycle
func UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "action_handler.UpdateStatus")
	defer span.End()

	id := c.Param("id")

	var req models.UpdateActionStatusRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !slices.Contains(models.ActionStatuses, req.Status) {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	ctx, repo, err := ectoinject.GetContext[*action.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.UpdateStatus(ctx, id, req)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update action status")
	}
	if result == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "action not found")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "actions", "update", result.ID)
	}

	return c.JSON(http.StatusOK, models.ActionResponse{Action: *result})
}
