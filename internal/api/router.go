package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/herbalroots/wellness-hub/docs"
	"github.com/herbalroots/wellness-hub/internal/api/handler"
	"github.com/herbalroots/wellness-hub/internal/api/middleware"
	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/infrastructure/http/handlers"
)

// Deps are the wired services the router mounts.
type Deps struct {
	Log             zerolog.Logger
	Verifier        ports.TokenVerifier
	TokenHeader     string
	Identity        ports.IdentityService
	Catalog         ports.CatalogService
	Recommendations ports.RecommendationService
	Admin           ports.AdminService
	Affiliates      ports.AffiliateService
	Readiness       []handlers.Dependency
	RecommendRPS    float64
	RecommendBurst  int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("wellness"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Identity)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	recommendationHandler := handler.NewRecommendationHandler(d.Recommendations, d.Catalog)
	adminHandler := handler.NewAdminHandler(d.Admin)
	affiliateHandler := handler.NewAffiliateHandler(d.Affiliates)

	authn := middleware.Auth(d.Verifier, d.TokenHeader, d.Log)
	withRole := middleware.LoadRole(d.Identity)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	affiliatesOnly := middleware.RBAC(domain.RoleAffiliate, domain.RoleAdmin)

	// --- Identity ---
	e.POST("/api/auth/login", authHandler.Login, authn)
	e.GET("/api/auth/me", authHandler.Me, authn)

	// --- Catalog ---
	e.GET("/api/products", catalogHandler.Products)
	e.GET("/api/symptoms", catalogHandler.Symptoms)
	e.POST("/api/symptoms", catalogHandler.CreateSymptom, authn, withRole, adminOnly)
	e.GET("/api/content/courses", catalogHandler.Courses, authn, withRole)

	// --- Recommendations ---
	e.POST("/api/recommendations", recommendationHandler.Recommend, middleware.RateLimit(d.RecommendRPS, d.RecommendBurst))

	// --- Admin ---
	e.GET("/api/admin/stats", adminHandler.Stats, authn, withRole, adminOnly)
	e.PUT("/api/admin/users/:whopUserId/affiliate", adminHandler.AssignAffiliate, authn, withRole, adminOnly)

	// --- Affiliate ---
	e.GET("/api/affiliate/link", affiliateHandler.Link, authn, withRole, affiliatesOnly)
	e.GET("/api/affiliate/stats", affiliateHandler.Stats, authn, withRole, affiliatesOnly)

	// --- Health checks (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness...)

	e.GET("/api/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/api/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
