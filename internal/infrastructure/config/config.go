package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	CORSOrigins string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	// TokenTTLDays is the session token lifetime; tokens carry no server-side
	// revocation, so logout is purely client-side.
	TokenTTLDays int `env:"JWT_EXPIRATION_DAYS, default=30"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI,   default=mongodb://localhost:27017"`
	Database string `env:"DATABASE_NAME, default=ai_study_buddy"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type GeminiConfig struct {
	APIKey1     string  `env:"GEMINI_API_KEY_1"`
	APIKey2     string  `env:"GEMINI_API_KEY_2"`
	Model       string  `env:"GEMINI_MODEL, default=gemini-1.5-flash"`
	MaxTokens   int     `env:"MAX_TOKENS,   default=1000"`
	Temperature float64 `env:"TEMPERATURE,  default=0.7"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required settings are configuration errors: the process must not
// serve traffic without them.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if cfg.Gemini.APIKey1 == "" && cfg.Gemini.APIKey2 == "" {
		return nil, errors.New("config: at least one of GEMINI_API_KEY_1/GEMINI_API_KEY_2 is required")
	}

	return &cfg, nil
}

// CORSOriginList splits the comma-separated origins setting.
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
