package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

// LoadRole puts the caller's effective role on the context. Callers that were
// never synced are guests. Must run after Auth.
func LoadRole(identity ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(KeyWhopUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errNoIdentity.Error())
			}

			role := domain.RoleGuest
			user, err := identity.Current(c.Request().Context(), userID)
			switch {
			case err == nil:
				role = user.EffectiveRole()
			case errors.Is(err, domain.ErrUserNotFound):
			default:
				return err
			}

			c.Set(KeyRole, role)
			return next(c)
		}
	}
}
