package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	BaseURL  string `env:"BASE_URL,  default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CSRFSecret signs security tokens. Required in production.
	CSRFSecret string `env:"CSRF_SECRET"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Generator GeneratorConfig
	Renderer  RendererConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=codecoach"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeneratorConfig struct {
	URL    string `env:"GENERATOR_URL,    default=http://localhost:9090"`
	APIKey string `env:"GENERATOR_API_KEY"`
	Model  string `env:"GENERATOR_MODEL,  default=codecoach-edu-1"`
}

type RendererConfig struct {
	URL string `env:"RENDERER_URL, default=http://localhost:9091"`
}

// Load reads configuration from environment variables using go-envconfig
// and enforces the production invariants before any request is served.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether strict mode applies.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.IsProduction() {
		if c.CSRFSecret == "" {
			return fmt.Errorf("config: CSRF_SECRET is required in production")
		}
		if c.Generator.APIKey == "" {
			return fmt.Errorf("config: GENERATOR_API_KEY is required in production")
		}
	}
	return nil
}
