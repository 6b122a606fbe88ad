package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gourmetcare/platform/internal/api/metrics"
	"github.com/gourmetcare/platform/internal/core/domain"
)

// RequireRole gates a route to an explicit set of roles. It must run after
// Authenticate: a missing principal is an authentication failure, a resolved
// principal outside the set is always a 403 — never a silent pass.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Principal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// The privilege tiers. Technician sits beside manager in the hierarchy but
// is not part of the manager-or-above set.

func RequireManager() echo.MiddlewareFunc {
	return RequireRole(domain.RoleManager, domain.RoleAdmin, domain.RoleSuperAdmin)
}

func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleSuperAdmin)
}
