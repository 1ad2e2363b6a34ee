package decision

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/internal/repositories/decision"
	"github.com/Ramsey-B/protea/internal/repositories/intervention"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/notify"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

var validate = validator.New()

// Register registers decision routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
}

// List returns all decisions, newest first
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "decision_handler.List")
	defer span.End()

	ctx, repo, err := ectoinject.GetContext[*decision.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	items, err := repo.List(ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to list decisions")
	}

	return c.JSON(http.StatusOK, models.DecisionListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// Create logs a decision against an existing intervention. A decision naming
// an unknown intervention is rejected; it would never surface in any chain.
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "decision_handler.Create")
	defer span.End()

	var req models.CreateDecisionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, interventions, err := ectoinject.GetContext[*intervention.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	parent, err := interventions.GetByID(ctx, req.InterventionID)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to check intervention")
	}
	if parent == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "intervention_id does not reference an existing intervention")
	}

	ctx, repo, err := ectoinject.GetContext[*decision.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.Create(ctx, req)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create decision")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "decisions", "insert", result.ID)
	}

	return c.JSON(http.StatusCreated, models.DecisionResponse{Decision: *result})
}
