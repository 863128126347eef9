package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Whop      WhopConfig
	Gemini    GeminiConfig
	Affiliate AffiliateConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, required"`
	Database string `env:"MONGO_DB,    default=herbal_roots"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=5m"`
}

// WhopConfig holds the membership platform settings. CompanyID is optional;
// without it roles come from the flat administrator flag only.
type WhopConfig struct {
	APIKey         string `env:"WHOP_API_KEY"`
	BaseURL        string `env:"WHOP_API_BASE_URL,     default=https://api.whop.com/api/v1"`
	CompanyID      string `env:"WHOP_COMPANY_ID"`
	AppID          string `env:"WHOP_APP_ID"`
	TokenPublicKey string `env:"WHOP_TOKEN_PUBLIC_KEY"`
	TokenHeader    string `env:"WHOP_TOKEN_HEADER,     default=x-whop-user-token"`
}

// GeminiConfig is optional; without an API key recommendations run offline.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

type AffiliateConfig struct {
	ShopBaseURL string `env:"SHOP_BASE_URL, default=https://shop.herbalroots.com/product/"`
}

type RateLimitConfig struct {
	RecommendRPS   float64 `env:"RECOMMEND_RPS,   default=2"`
	RecommendBurst int     `env:"RECOMMEND_BURST, default=5"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
// A missing MONGODB_URI is an error.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom is Load with an explicit lookuper, used by tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
