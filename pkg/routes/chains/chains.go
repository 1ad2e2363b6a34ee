package chains

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/pkg/chain"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// ListResponse is the API response for the chains view
type ListResponse struct {
	Items      []chain.Chain `json:"items"`
	TotalCount int           `json:"total_count"`
}

// Register registers chain routes
func Register(g *echo.Group) {
	g.GET("", List)
}

// List returns the contribution chains for every intervention that has at
// least one decision.
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "chains_handler.List")
	defer span.End()

	ctx, store, err := ectoinject.GetContext[*snapshot.Store](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get snapshot store")
	}

	snap := store.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "dataset not loaded yet, retry shortly")
	}

	items := chain.BuildAll(snap.Dataset)

	return c.JSON(http.StatusOK, ListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}
