package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Dashboard totals
// @Tags         admin
// @Produce      json
// @Security     WhopUserToken
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// AssignAffiliate handles PUT /api/admin/users/:whopUserId/affiliate.
//
// @Summary      Assign an affiliate code
// @Tags         admin
// @Produce      json
// @Security     WhopUserToken
// @Param        whopUserId  path      string  true  "Whop user id"
// @Success      200         {object}  userResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/admin/users/{whopUserId}/affiliate [put]
func (h *AdminHandler) AssignAffiliate(c echo.Context) error {
	user, err := h.admin.AssignAffiliateCode(c.Request().Context(), c.Param("whopUserId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}
