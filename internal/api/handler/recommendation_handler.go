package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type RecommendationHandler struct {
	recommender ports.RecommendationService
	catalog     ports.CatalogService
}

func NewRecommendationHandler(recommender ports.RecommendationService, catalog ports.CatalogService) *RecommendationHandler {
	return &RecommendationHandler{recommender: recommender, catalog: catalog}
}

// Recommend handles POST /api/recommendations. The body is null when no
// catalog product fits.
//
// @Summary      Recommend a product for symptoms
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        body  body      recommendRequest  true  "Symptoms and free text"
// @Success      200   {object}  domain.Recommendation
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/recommendations [post]
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && len(req.Symptoms) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "symptoms or text is required")
	}

	ctx := c.Request().Context()
	catalog, err := h.catalog.Products(ctx)
	if err != nil {
		return err
	}

	rec, err := h.recommender.Recommend(ctx, ports.RecommendInput{Text: req.Text, Symptoms: req.Symptoms}, catalog)
	if err != nil {
		return err
	}
	// A nil pointer encodes as JSON null.
	return c.JSON(http.StatusOK, rec)
}
