package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_RequiresMongoURI(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error when MONGODB_URI is missing")
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"MONGODB_URI": "mongodb://db:27017",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Mongo.Database != "herbal_roots" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.Whop.TokenHeader != "x-whop-user-token" {
		t.Errorf("token header = %q", cfg.Whop.TokenHeader)
	}
	if cfg.Whop.CompanyID != "" || cfg.Gemini.APIKey != "" {
		t.Errorf("optional credentials should default to empty")
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v", cfg.Redis.CacheTTL)
	}
	if cfg.RateLimit.RecommendBurst != 5 {
		t.Errorf("burst = %d", cfg.RateLimit.RecommendBurst)
	}
	if cfg.IsProduction() {
		t.Errorf("default env should not be production")
	}
}
