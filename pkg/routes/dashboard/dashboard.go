package dashboard

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/pkg/redis"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// Register registers dashboard routes
func Register(g *echo.Group) {
	g.GET("", Get)
}

// Get returns the dashboard aggregates. When Redis is configured the cached
// copy is preferred so every replica serves the same view; otherwise the
// snapshot's own precomputed aggregates are returned.
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "dashboard_handler.Get")
	defer span.End()

	ctx, store, err := ectoinject.GetContext[*snapshot.Store](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get snapshot store")
	}

	snap := store.Current()
	if snap == nil {
		return httperror.NewHTTPError(http.StatusServiceUnavailable, "dataset not loaded yet, retry shortly")
	}

	ctx, cache, err := ectoinject.GetContext[*redis.StatsCache](ctx)
	if err != nil || cache == nil {
		return c.JSON(http.StatusOK, snap.Stats)
	}

	if cached := cache.Get(ctx); cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	cache.Set(ctx, snap.Stats)
	return c.JSON(http.StatusOK, snap.Stats)
}
