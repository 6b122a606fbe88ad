package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gourmetcare/platform/internal/api/middleware"
	"github.com/gourmetcare/platform/internal/core/domain"
)

// ctxPrincipal extracts the user resolved by the Authenticate middleware and
// fast-fails before any service call. A missing principal means the route
// was wired without the middleware — reject with 401 rather than panic on a
// nil user downstream.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user, ok := middleware.Principal(c)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
