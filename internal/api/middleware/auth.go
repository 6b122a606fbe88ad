package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gourmetcare/platform/internal/api/metrics"
	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/ports"
)

// AccessTokenCookie is the cookie the token travels in.
const AccessTokenCookie = "accessToken"

// principalKey is the echo context key the resolved user is stored under.
const principalKey = "principal"

// Authenticate verifies the access token and resolves the full user record
// into the request context. The token is read from the accessToken cookie
// first, then from the Authorization header; the cookie wins when both are
// present.
func Authenticate(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized request")
			}

			identifier, _, err := tokens.Verify(token)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			// Tokens outlive accounts (there is no revocation list), so
			// the user may be gone by now. That is an authentication
			// failure, not a server error.
			user, err := users.FindByEmail(c.Request().Context(), identifier)
			if err != nil {
				if err == domain.ErrUserNotFound {
					metrics.AuthDeniedTotal.WithLabelValues("unknown_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				return err
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// Principal returns the user resolved by Authenticate, if any.
func Principal(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(principalKey).(*domain.User)
	return user, ok
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
