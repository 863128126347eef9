package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type AffiliateHandler struct {
	affiliates ports.AffiliateService
}

func NewAffiliateHandler(affiliates ports.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliates: affiliates}
}

// Link handles GET /api/affiliate/link?productId=.
//
// @Summary      Shareable product link
// @Tags         affiliate
// @Produce      json
// @Security     WhopUserToken
// @Param        productId  query     string  true  "Product id"
// @Success      200        {object}  linkResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /api/affiliate/link [get]
func (h *AffiliateHandler) Link(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	productID := strings.TrimSpace(c.QueryParam("productId"))
	if productID == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "productId is required")
	}

	link, err := h.affiliates.ProductLink(c.Request().Context(), userID, productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, linkResponse{URL: link})
}

// Stats handles GET /api/affiliate/stats.
//
// @Summary      Affiliate earnings summary
// @Tags         affiliate
// @Produce      json
// @Security     WhopUserToken
// @Success      200  {object}  domain.AffiliateStats
// @Failure      403  {object}  errorResponse
// @Router       /api/affiliate/stats [get]
func (h *AffiliateHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.affiliates.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
