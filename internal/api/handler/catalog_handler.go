package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

// CatalogHandler serves products, symptoms and courses.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Products handles GET /api/products.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      500  {object}  errorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	products, err := h.catalog.Products(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Symptoms handles GET /api/symptoms.
//
// @Summary      List symptoms with their recommended products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Symptom
// @Failure      500  {object}  errorResponse
// @Router       /api/symptoms [get]
func (h *CatalogHandler) Symptoms(c echo.Context) error {
	symptoms, err := h.catalog.Symptoms(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, symptoms)
}

// CreateSymptom handles POST /api/symptoms.
//
// @Summary      Create a symptom
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     WhopUserToken
// @Param        body  body      createSymptomRequest  true  "Symptom"
// @Success      201   {object}  domain.Symptom
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/symptoms [post]
func (h *CatalogHandler) CreateSymptom(c echo.Context) error {
	var req createSymptomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	symptom, err := h.catalog.CreateSymptom(c.Request().Context(), ports.CreateSymptomInput{
		Name:                  req.Name,
		Category:              req.Category,
		RecommendedProductIDs: req.RecommendedProductIDs,
		EducationalSnippet:    req.EducationalSnippet,
		Ritual:                req.Ritual,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, symptom)
}

// Courses handles GET /api/content/courses. Guests see every course locked.
//
// @Summary      List courses
// @Tags         content
// @Produce      json
// @Security     WhopUserToken
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  errorResponse
// @Router       /api/content/courses [get]
func (h *CatalogHandler) Courses(c echo.Context) error {
	courses, err := h.catalog.Courses(c.Request().Context(), ctxRole(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}
