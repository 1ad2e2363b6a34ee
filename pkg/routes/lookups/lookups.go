package lookups

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/protea/pkg/models"
)

// Register registers lookup routes
func Register(g *echo.Group) {
	g.GET("", Get)
}

// Get returns the lookup tables the capture forms need: provinces, districts,
// intervention types, stages and the rest of the programme vocabulary.
func Get(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Lookups())
}
