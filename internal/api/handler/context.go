package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/api/middleware"
	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// ctxUserID returns the verified platform id set by the Auth middleware.
// An empty id means the route was mounted without Auth.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.KeyWhopUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return id, nil
}

// ctxRole returns the role set by LoadRole, guest when absent.
func ctxRole(c echo.Context) domain.Role {
	role, ok := c.Get(middleware.KeyRole).(domain.Role)
	if !ok {
		return domain.RoleGuest
	}
	return role
}
