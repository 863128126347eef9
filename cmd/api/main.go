// @title        Herbal Roots Wellness Hub API
// @version      1.0
// @description  Whop-embedded wellness app: identity sync, catalog and herbal recommendations.
// @BasePath     /
//
// @securityDefinitions.apikey  WhopUserToken
// @in                          header
// @name                        x-whop-user-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/api"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/core/service"
	"github.com/herbalroots/wellness-hub/internal/infrastructure/config"
	mongostore "github.com/herbalroots/wellness-hub/internal/infrastructure/db/mongo"
	redisstore "github.com/herbalroots/wellness-hub/internal/infrastructure/db/redis"
	"github.com/herbalroots/wellness-hub/internal/infrastructure/gemini"
	"github.com/herbalroots/wellness-hub/internal/infrastructure/http/handlers"
	"github.com/herbalroots/wellness-hub/internal/infrastructure/whop"
	"github.com/herbalroots/wellness-hub/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "wellness-hub",
	})

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "wellness-hub",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	users := mongostore.NewUserRepository(db)
	catalogRepo := mongostore.NewCatalogRepository(db)
	conversions := mongostore.NewConversionRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}
	if err := catalogRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure catalog indexes")
	}
	if err := conversions.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure conversion indexes")
	}

	readiness := []handlers.Dependency{{Name: "mongodb", Check: handlers.MongoCheck(db)}}
	var cache ports.CatalogCache
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving catalog without cache")
		readiness = append(readiness, handlers.Dependency{Name: "redis", Optional: true})
	} else {
		defer func() { _ = rdb.Close() }()
		catalogCache := redisstore.NewCatalogCache(rdb, cfg.Redis.CacheTTL, log)
		if err := catalogCache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("flush catalog cache")
		}
		cache = catalogCache
		readiness = append(readiness, handlers.Dependency{Name: "redis", Check: handlers.RedisCheck(rdb), Optional: true})
	}

	// --- Whop ---
	whopClient := whop.NewClient(whop.Config{BaseURL: cfg.Whop.BaseURL, APIKey: cfg.Whop.APIKey})
	verifier, err := whop.NewTokenVerifier(cfg.Whop.TokenHeader, cfg.Whop.TokenPublicKey, cfg.Whop.AppID)
	if err != nil {
		log.Fatal().Err(err).Msg("whop token verifier")
	}
	if cfg.Whop.TokenPublicKey == "" {
		log.Warn().Msg("WHOP_TOKEN_PUBLIC_KEY not set, every identity token will be rejected")
	}
	if cfg.Whop.CompanyID == "" {
		log.Warn().Msg("WHOP_COMPANY_ID not set, roles come from the flat admin flag only")
	}

	// --- Recommendation model ---
	var model ports.RecommendationModel
	if cfg.Gemini.APIKey != "" {
		m, err := gemini.New(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client")
		}
		model = m
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, recommendations use the offline fallback")
	}

	// --- Services ---
	classifier := service.NewAccessClassifier(whopClient, cfg.Whop.CompanyID, log)
	identity := service.NewIdentityService(users, whopClient, classifier, log)
	catalog := service.NewCatalogService(catalogRepo, cache, log)

	e := api.NewRouter(api.Deps{
		Log:             log,
		Verifier:        verifier,
		TokenHeader:     verifier.Header(),
		Identity:        identity,
		Catalog:         catalog,
		Recommendations: service.NewRecommendationService(model, log),
		Admin:           service.NewAdminService(users, catalogRepo, log),
		Affiliates:      service.NewAffiliateService(users, catalog, conversions, cfg.Affiliate.ShopBaseURL),
		Readiness:       readiness,
		RecommendRPS:    cfg.RateLimit.RecommendRPS,
		RecommendBurst:  cfg.RateLimit.RecommendBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("api server failed")
		}
	}()

	waitForShutdown(srv, log)
}

func waitForShutdown(srv *http.Server, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
		return
	}
	log.Info().Msg("api stopped gracefully")
}
