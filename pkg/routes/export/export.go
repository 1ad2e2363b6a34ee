package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/pkg/export"
	"github.com/Ramsey-B/protea/pkg/filter"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// Register registers export routes
func Register(g *echo.Group) {
	g.GET("/interventions.csv", Interventions)
}

// Interventions streams the tracker CSV. The same filters as the list view
// apply, so a filtered export matches what the caller sees on screen.
func Interventions(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "export_handler.Interventions")
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

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.Filename(time.Now())))
	c.Response().WriteHeader(http.StatusOK)

	if err := export.WriteCSV(c.Response(), items); err != nil {
		return err
	}

	return nil
}
