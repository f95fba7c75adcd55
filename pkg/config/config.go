package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

// Config carries everything the SDK needs to talk to the platform.
type Config struct {
	App        AppConfig
	API        APIConfig
	LocalStore LocalStoreConfig
	Cache      CacheConfig
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config regardless of how it was constructed.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type AppConfig struct {
	ServiceName  string `envconfig:"CW_SERVICE_NAME" default:"loyalty-sdk"`
	LogLevel     string `envconfig:"CW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CW_LOG_WARN_STACK" default:"false"`
}

type APIConfig struct {
	BaseURL          string        `envconfig:"CW_API_BASE_URL" default:"https://customer.api.cw.marketing/api" validate:"required,url"`
	CompanyAccessKey string        `envconfig:"CW_COMPANY_ACCESS_KEY" validate:"required"`
	LoyaltyID        string        `envconfig:"CW_LOYALTY_ID" validate:"required"`
	CompanyID        string        `envconfig:"CW_COMPANY_ID"`
	SourceID         string        `envconfig:"CW_SOURCE_ID"`
	Timeout          time.Duration `envconfig:"CW_API_TIMEOUT" default:"15s"`
	RetryMax         uint64        `envconfig:"CW_API_RETRY_MAX" default:"3"`
	RetryBaseDelay   time.Duration `envconfig:"CW_API_RETRY_BASE_DELAY" default:"250ms"`
	DefaultPageLimit int64         `envconfig:"CW_API_PAGE_LIMIT" default:"100"`
}

type LocalStoreConfig struct {
	Path string `envconfig:"CW_LOCAL_STORE_PATH" default:"cw_marketing.db"`
}

type CacheConfig struct {
	RedisURL     string        `envconfig:"CW_CACHE_REDIS_URL"`
	TTL          time.Duration `envconfig:"CW_CACHE_TTL" default:"1h"`
	DialTimeout  time.Duration `envconfig:"CW_CACHE_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CW_CACHE_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CW_CACHE_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether the shared cache is configured at all.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}
