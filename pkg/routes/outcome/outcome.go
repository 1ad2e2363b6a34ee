package outcome

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/internal/repositories/action"
	"github.com/Ramsey-B/protea/internal/repositories/outcome"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/notify"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

var validate = validator.New()

// Register registers outcome routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
}

// List returns all outcomes, newest first
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "outcome_handler.List")
	defer span.End()

	ctx, repo, err := ectoinject.GetContext[*outcome.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	items, err := repo.List(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to list outcomes")
	}

	return c.JSON(http.StatusOK, models.OutcomeListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// Create records an outcome against an existing action. The intervention
// reference is copied from the action, never taken from the request.
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "outcome_handler.Create")
	defer span.End()

	var req models.CreateOutcomeRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, actions, err := ectoinject.GetContext[*action.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	parent, err := actions.GetByID(ctx, req.ActionID)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to check action")
	}
	if parent == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "action_id does not reference an existing action")
	}

	ctx, repo, err := ectoinject.GetContext[*outcome.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.Create(ctx, req, parent.InterventionID)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create outcome")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "outcomes", "insert", result.ID)
	}

	return c.JSON(http.StatusCreated, models.OutcomeResponse{Outcome: *result})
}
