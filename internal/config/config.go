package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir string `env:"STATIC_DIR" envDefault:"web"`

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"postgres"` // "postgres" (production database)
	DatabaseURL   string `env:"DATABASE_URL"`

	// Inference
	InferenceProvider string `env:"INFERENCE_PROVIDER" envDefault:"llamacpp"` // "llamacpp" (native completion API) or "openai" (OpenAI-compatible chat API)
	LlamaCppURL       string `env:"LLAMA_CPP_URL" envDefault:"http://llama:8080"`
	InferenceAPIKey   string `env:"INFERENCE_API_KEY"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Cache
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "nats" or "none"
	NatsURL        string `env:"NATS_URL"`

	// Listing
	DefaultListLimit int `env:"DEFAULT_LIST_LIMIT" envDefault:"50"`
	MaxListLimit     int `env:"MAX_LIST_LIMIT" envDefault:"500"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
