package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Login synchronizes the caller's Whop identity into the local user store.
//
// @Summary      Sync the Whop identity
// @Description  Verifies the Whop user token, refreshes profile and role from Whop and upserts the local record.
// @Tags         auth
// @Produce      json
// @Security     WhopUserToken
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.identity.Sync(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Me returns the caller's locally synchronized record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     WhopUserToken
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.identity.Current(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}
