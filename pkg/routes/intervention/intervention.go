package intervention

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/internal/repositories/intervention"
	"github.com/Ramsey-B/protea/pkg/chain"
	"github.com/Ramsey-B/protea/pkg/filter"
	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/Ramsey-B/protea/pkg/notify"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

var validate = validator.New()

// Register registers intervention routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Upsert)
	g.GET("/:id", Get)
	g.DELETE("/:id", Delete)
	g.GET("/:id/chain", Chain)
}

// List returns the filtered intervention list from the current snapshot
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "intervention_handler.List")
	defer span.End()

	ctx, store, err := ectoinject.GetContext[*snapshot.Store](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get snapshot store")
	}

	snap := store.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "dataset not loaded yet, retry shortly")
	}

	criteria := filter.Criteria{
		Province: c.QueryParam("province"),
		Type:     c.QueryParam("type"),
		Stage:    c.QueryParam("stage"),
		Search:   c.QueryParam("q"),
	}
	items := filter.Apply(snap.Dataset.Interventions, criteria)

	return c.JSON(http.StatusOK, models.InterventionListResponse{
		Items:      items,
		Shown:      len(items),
		TotalCount: len(snap.Dataset.Interventions),
	})
}

// Get returns a single intervention straight from the gateway, so a caller
// sees its own write before the next snapshot lands.
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "intervention_handler.Get")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*intervention.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get intervention")
	}
	if item == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "intervention not found")
	}

	return c.JSON(http.StatusOK, models.InterventionResponse{Intervention: *item})
}

// Upsert registers a new intervention or replaces an existing one by ID
func Upsert(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "intervention_handler.Upsert")
	defer span.End()

	var req models.UpsertInterventionRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*intervention.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.Upsert(ctx, req)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to save intervention")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "interventions", "upsert", result.ID)
	}

	return c.JSON(http.StatusOK, models.InterventionResponse{Intervention: *result})
}

// Delete removes an intervention. Dependent records are not cascaded; they
// simply stop appearing in chains.
func Delete(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "intervention_handler.Delete")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*intervention.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get intervention")
	}
	if existing == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "intervention not found")
	}

	if err := repo.Delete(ctx, id); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete intervention")
	}

	ctx, notifier, err := ectoinject.GetContext[*notify.Notifier](ctx)
	if err == nil {
		notifier.RecordChanged(ctx, "interventions", "delete", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// Chain returns the contribution chain for one intervention
func Chain(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "intervention_handler.Chain")
	defer span.End()

	id := c.Param("id")

	ctx, store, err := ectoinject.GetContext[*snapshot.Store](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get snapshot store")
	}

	snap := store.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "dataset not loaded yet, retry shortly")
	}

	item := snap.Dataset.Intervention(id)
	if item == nil {
		return httperror.NewHTTPError(http.StatusNotFound, "intervention not found")
	}

	return c.JSON(http.StatusOK, chain.Build(snap.Dataset, *item))
}
